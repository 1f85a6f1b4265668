package rubric

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// The markdown rubric format is the hand-edited external interface:
//
//	# Question Title <!-- id:abc-123 -->
//	- Comment text <!-- id:def-456 -->
//	- Comment text (-5) <!-- id:ghi-789 -->
//
// The id markers are invisible to a human editor but let a round trip through
// (edit text, reparse) preserve entity identity even when titles, texts, and
// deductions change.

var (
	idMarkerRe  = regexp.MustCompile(`<!--\s*id:([a-zA-Z0-9-]+)\s*-->`)
	deductionRe = regexp.MustCompile(`\(-(\d+)\)`)
)

// ToMarkdown serializes an assignment's questions and comments. The deduction
// suffix is emitted only when the deduction is nonzero; question blocks are
// separated by a blank line.
func ToMarkdown(a Assignment) string {
	blocks := make([]string, 0, len(a.Questions))
	for _, q := range a.Questions {
		var b strings.Builder
		fmt.Fprintf(&b, "# %s <!-- id:%s -->", q.Title, q.ID)
		for _, c := range q.Comments {
			b.WriteString("\n- " + c.Text)
			if c.Deduction != 0 {
				fmt.Fprintf(&b, " (-%s)", formatPoints(math.Abs(c.Deduction)))
			}
			fmt.Fprintf(&b, " <!-- id:%s -->", c.ID)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// FromMarkdown parses the text form back into an assignment. The original's
// ID and Title are kept as-is; only the question list is replaced, so any
// other assignment-level field survives the round trip.
//
// The parser is a two-state line machine: before the first heading there is
// no current question, and bullet lines in that state are dropped. Malformed
// lines are never an error; unrecognized syntax is silently ignored.
func FromMarkdown(text string, original Assignment, gen IDGen) Assignment {
	questions := []Question{}
	cur := -1 // index into questions; -1 means no current question yet

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		id, content := extractID(line)

		switch {
		case strings.HasPrefix(content, "#"):
			title := strings.TrimSpace(strings.TrimLeft(content, "#"))
			if title == "" {
				title = "unnamed question"
			}
			if id == "" {
				id = gen()
			}
			questions = append(questions, Question{ID: id, Title: title, Comments: []Comment{}})
			cur = len(questions) - 1

		case strings.HasPrefix(content, "-") || strings.HasPrefix(content, "*"):
			if cur < 0 {
				continue // orphaned comment before any heading
			}
			body := strings.TrimSpace(content[1:])
			deduction := 0.0
			if loc := deductionRe.FindStringSubmatchIndex(body); loc != nil {
				if n, err := strconv.Atoi(body[loc[2]:loc[3]]); err == nil {
					deduction = float64(n)
				}
				body = strings.TrimSpace(body[:loc[0]] + body[loc[1]:])
			}
			if body == "" {
				body = "Empty"
			}
			if id == "" {
				id = gen()
			}
			questions[cur].Comments = append(questions[cur].Comments, Comment{
				ID:        id,
				Text:      body,
				Deduction: deduction,
			})
		}
	}

	out := original
	out.Questions = questions
	return out
}

// extractID pulls the first embedded id marker out of a line, returning the
// token (or "") and the line with the marker removed and re-trimmed.
func extractID(line string) (string, string) {
	loc := idMarkerRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return "", line
	}
	id := line[loc[2]:loc[3]]
	content := strings.TrimSpace(line[:loc[0]] + line[loc[1]:])
	return id, content
}
