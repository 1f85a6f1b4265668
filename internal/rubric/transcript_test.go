package rubric

import "testing"

func transcriptAssignment() Assignment {
	return Assignment{
		ID: "a1",
		Questions: []Question{
			{ID: "q1", Title: "Formula", Comments: []Comment{
				{ID: "c1", Text: "wrong formula", Deduction: 10},
				{ID: "c2", Text: "late", Deduction: 5},
			}},
			{ID: "q2", Title: "Style", Comments: []Comment{
				{ID: "c3", Text: "  ", Deduction: 2},
			}},
		},
	}
}

func TestGenerateTranscript(t *testing.T) {
	a := transcriptAssignment()
	sub := Submission{AssignmentID: "a1", Selected: Selection{
		// selection order reversed on purpose: output follows bank order
		"q1": NewCommentSet("c2", "c1"),
		"q2": NewCommentSet("c3"),
	}}

	want := "# Formula\n\n- wrong formula (-10)\n- late (-5)\n\n# Style\n\n- (not filled in) (-2)"
	if got := GenerateTranscript(a, sub); got != want {
		t.Errorf("GenerateTranscript() = %q, want %q", got, want)
	}
}

func TestGenerateTranscriptEmptySelection(t *testing.T) {
	a := transcriptAssignment()
	sub := Submission{AssignmentID: "a1", Selected: Selection{}}
	if got := GenerateTranscript(a, sub); got != "" {
		t.Errorf("GenerateTranscript() = %q, want empty", got)
	}
}

func TestGenerateTranscriptSkipsUnresolvable(t *testing.T) {
	a := transcriptAssignment()
	sub := Submission{AssignmentID: "a1", Selected: Selection{
		"q1": NewCommentSet("deleted-id"),
		"q2": NewCommentSet("c3"),
	}}

	// q1's heading must not appear: its only selection no longer resolves.
	want := "# Style\n\n- (not filled in) (-2)"
	if got := GenerateTranscript(a, sub); got != want {
		t.Errorf("GenerateTranscript() = %q, want %q", got, want)
	}
}
