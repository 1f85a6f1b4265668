package rubric

import "math"

// DefaultBaseScore is the starting score before deductions.
const DefaultBaseScore = 100

// ComputeScore derives a submission's score from the assignment structure:
// every selected comment that still resolves within its question contributes
// its deduction, everything else contributes nothing. The result is clamped at
// zero and rounded to two decimals (half away from zero).
func ComputeScore(a Assignment, sub Submission, baseScore float64) float64 {
	total := 0.0
	for _, q := range a.Questions {
		for _, cid := range sub.Selected[q.ID] {
			if c, ok := q.FindComment(cid); ok {
				total += c.Deduction
			}
		}
	}
	final := baseScore - total
	if final < 0 {
		final = 0
	}
	return math.Round(final*100) / 100
}

// RecalculateAll recomputes the score of every submission belonging to the
// assignment; submissions for other assignments pass through unchanged. Used
// in bulk whenever the rubric structure changes.
func RecalculateAll(a Assignment, subs []Submission, baseScore float64) []Submission {
	out := make([]Submission, len(subs))
	for i, s := range subs {
		if s.AssignmentID == a.ID {
			s.Score = ComputeScore(a, s, baseScore)
		}
		out[i] = s
	}
	return out
}
