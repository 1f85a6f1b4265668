package rubric

import (
	"fmt"
	"strconv"
	"strings"
)

// GenerateTranscript renders a plain-text summary of a submission's selected
// comments, grouped by question in assignment order. Questions with no
// resolvable selections are skipped entirely, heading included. Comments are
// listed in bank order, not selection order.
func GenerateTranscript(a Assignment, sub Submission) string {
	var b strings.Builder
	for _, q := range a.Questions {
		ids := sub.Selected[q.ID]
		if len(ids) == 0 {
			continue
		}
		var picked []Comment
		for _, c := range q.Comments {
			if ids.Contains(c.ID) {
				picked = append(picked, c)
			}
		}
		if len(picked) == 0 {
			continue
		}
		b.WriteString("# " + q.Title + "\n\n")
		for _, c := range picked {
			text := strings.TrimSpace(c.Text)
			if text == "" {
				text = "(not filled in)"
			}
			fmt.Fprintf(&b, "- %s (-%s)\n", text, formatPoints(c.Deduction))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// formatPoints prints a point value without trailing zeros (5, not 5.00).
func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
