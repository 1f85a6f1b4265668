package rubric

import "testing"

func sampleAssignment() Assignment {
	return Assignment{
		ID:    "a1",
		Title: "Homework 1",
		Questions: []Question{
			{
				ID:    "q1",
				Title: "Q1",
				Comments: []Comment{
					{ID: "c1", Text: "wrong formula", Deduction: 10},
					{ID: "c2", Text: "late", Deduction: 5},
				},
			},
		},
	}
}

func TestComputeScore(t *testing.T) {
	a := sampleAssignment()

	tests := []struct {
		name     string
		selected Selection
		want     float64
	}{
		{name: "no selections", selected: Selection{}, want: 100},
		{name: "both comments", selected: Selection{"q1": NewCommentSet("c1", "c2")}, want: 85},
		{name: "one stale id skipped", selected: Selection{"q1": NewCommentSet("c1", "nonexistent")}, want: 90},
		{name: "stale question skipped", selected: Selection{"gone": NewCommentSet("c1")}, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := Submission{ID: "s1", AssignmentID: "a1", Selected: tt.selected}
			if got := ComputeScore(a, sub, DefaultBaseScore); got != tt.want {
				t.Errorf("ComputeScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeScoreNeverNegative(t *testing.T) {
	a := sampleAssignment()
	a.Questions[0].Comments[0].Deduction = 200
	sub := Submission{AssignmentID: "a1", Selected: Selection{"q1": NewCommentSet("c1")}}
	if got := ComputeScore(a, sub, DefaultBaseScore); got != 0 {
		t.Errorf("ComputeScore() = %v, want 0", got)
	}
}

func TestComputeScoreRounding(t *testing.T) {
	a := sampleAssignment()
	a.Questions[0].Comments[0].Deduction = 0.125
	sub := Submission{AssignmentID: "a1", Selected: Selection{"q1": NewCommentSet("c1")}}
	// 99.875 rounds half away from zero to 99.88
	if got := ComputeScore(a, sub, DefaultBaseScore); got != 99.88 {
		t.Errorf("ComputeScore() = %v, want 99.88", got)
	}
}

func TestScoreMonotonicity(t *testing.T) {
	a := sampleAssignment()
	base := Submission{AssignmentID: "a1", Selected: Selection{"q1": NewCommentSet("c1")}}
	before := ComputeScore(a, base, DefaultBaseScore)

	more := base
	more.Selected = Selection{"q1": base.Selected["q1"].Add("c2")}
	after := ComputeScore(a, more, DefaultBaseScore)

	if after > before {
		t.Errorf("adding a selection raised the score: %v -> %v", before, after)
	}
}

func TestDanglingCommentTolerance(t *testing.T) {
	a := sampleAssignment()
	sub := Submission{AssignmentID: "a1", Selected: Selection{"q1": NewCommentSet("c1", "c2")}}

	// Remove c2 from the bank while it is still selected.
	a.Questions[0].Comments = a.Questions[0].Comments[:1]
	if got := ComputeScore(a, sub, DefaultBaseScore); got != 90 {
		t.Errorf("ComputeScore() = %v, want 90 after comment removal", got)
	}
}

func TestRecalculateAll(t *testing.T) {
	a := sampleAssignment()
	subs := []Submission{
		{ID: "s1", AssignmentID: "a1", Selected: Selection{"q1": NewCommentSet("c1")}, Score: 100},
		{ID: "s2", AssignmentID: "other", Selected: Selection{"q1": NewCommentSet("c1")}, Score: 42},
	}
	out := RecalculateAll(a, subs, DefaultBaseScore)

	if out[0].Score != 90 {
		t.Errorf("matching submission score = %v, want 90", out[0].Score)
	}
	if out[1].Score != 42 {
		t.Errorf("other-assignment submission score = %v, want unchanged 42", out[1].Score)
	}
	if subs[0].Score != 100 {
		t.Errorf("input slice mutated: score = %v", subs[0].Score)
	}
}
