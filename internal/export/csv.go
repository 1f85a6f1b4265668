// Package export renders store state into the interchange formats the UI
// offers for download: a per-assignment grades CSV and a full JSON backup.
package export

import (
	"strconv"
	"strings"

	"github.com/scorebook/scorebook/internal/rubric"
)

// GradesCSV renders one row per submission of the assignment, in store order.
// Selected comments are resolved against the assignment's current structure;
// ids that no longer resolve are skipped. The comments column is always
// double-quoted, with quote characters inside comment text doubled.
func GradesCSV(a rubric.Assignment, subs []rubric.Submission) string {
	var b strings.Builder
	b.WriteString("Student ID,Name,Score,Comments\n")

	for _, sub := range subs {
		if sub.AssignmentID != a.ID {
			continue
		}
		var comments []string
		for _, q := range a.Questions {
			for _, cid := range sub.Selected[q.ID] {
				if c, ok := q.FindComment(cid); ok {
					comments = append(comments, c.Text)
				}
			}
		}
		joined := strings.ReplaceAll(strings.Join(comments, "; "), `"`, `""`)
		b.WriteString(sub.Student.ID)
		b.WriteByte(',')
		b.WriteString(sub.Student.Name)
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(sub.Score, 'f', -1, 64))
		b.WriteString(`,"` + joined + `"` + "\n")
	}
	return b.String()
}
