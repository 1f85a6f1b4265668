package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/scorebook/scorebook/internal/rubric"
)

func seqGen() rubric.IDGen {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func newTestStore(t *testing.T) Store {
	t.Helper()
	st := NewInMemoryStore(seqGen(), rubric.DefaultBaseScore)
	err := st.PutAssignment(rubric.Assignment{
		ID:    "a1",
		Title: "HW",
		Questions: []rubric.Question{
			{ID: "q1", Title: "Q1", Comments: []rubric.Comment{
				{ID: "c1", Text: "wrong formula", Deduction: 10},
				{ID: "c2", Text: "late", Deduction: 5},
			}},
		},
	})
	if err != nil {
		t.Fatalf("PutAssignment: %v", err)
	}
	return st
}

func TestUpsertSubmission(t *testing.T) {
	st := newTestStore(t)

	first, err := st.UpsertSubmission("a1", rubric.Student{ID: "S1", Name: "Ada"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first.Score != 100 || first.ID == "" {
		t.Errorf("new submission = %+v", first)
	}

	again, err := st.UpsertSubmission("a1", rubric.Student{ID: "S1", Name: "ignored"})
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("second upsert created a new submission: %q vs %q", again.ID, first.ID)
	}

	subs, _ := st.ListSubmissionsByAssignment("a1")
	if len(subs) != 1 {
		t.Errorf("len = %d, want 1", len(subs))
	}
}

func TestSelectionRecomputesScore(t *testing.T) {
	st := newTestStore(t)
	sub, _ := st.UpsertSubmission("a1", rubric.Student{ID: "S1"})

	got, err := st.SetQuestionSelection(sub.ID, "q1", []string{"c1", "c2"})
	if err != nil {
		t.Fatalf("SetQuestionSelection: %v", err)
	}
	if got.Score != 85 {
		t.Errorf("score = %v, want 85", got.Score)
	}

	got, err = st.SetSelection(sub.ID, rubric.Selection{"q1": rubric.NewCommentSet("c2")})
	if err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if got.Score != 95 {
		t.Errorf("score = %v, want 95", got.Score)
	}
}

func TestReplaceQuestionsRecalculates(t *testing.T) {
	st := newTestStore(t)
	sub, _ := st.UpsertSubmission("a1", rubric.Student{ID: "S1"})
	if _, err := st.SetQuestionSelection(sub.ID, "q1", []string{"c1"}); err != nil {
		t.Fatalf("select: %v", err)
	}

	// Bump c1's deduction from 10 to 25 via a structural replacement.
	_, err := st.ReplaceQuestions("a1", []rubric.Question{
		{ID: "q1", Title: "Q1", Comments: []rubric.Comment{
			{ID: "c1", Text: "wrong formula", Deduction: 25},
		}},
	})
	if err != nil {
		t.Fatalf("ReplaceQuestions: %v", err)
	}

	got, _ := st.GetSubmission(sub.ID)
	if got.Score != 75 {
		t.Errorf("score = %v, want 75 after recalculation", got.Score)
	}
}

func TestDeleteAssignmentKeepsOrphans(t *testing.T) {
	st := newTestStore(t)
	sub, _ := st.UpsertSubmission("a1", rubric.Student{ID: "S1"})

	if err := st.DeleteAssignment("a1"); err != nil {
		t.Fatalf("DeleteAssignment: %v", err)
	}
	if _, err := st.GetAssignment("a1"); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("GetAssignment err = %v, want ErrAssignmentNotFound", err)
	}

	orphan, err := st.GetSubmission(sub.ID)
	if err != nil {
		t.Fatalf("orphan lost: %v", err)
	}
	// Selection updates on an orphan must not panic and must keep the score.
	got, err := st.SetQuestionSelection(orphan.ID, "q1", []string{"c1"})
	if err != nil {
		t.Fatalf("orphan update: %v", err)
	}
	if got.Score != orphan.Score {
		t.Errorf("orphan score changed: %v -> %v", orphan.Score, got.Score)
	}
}

func TestStudentUpdates(t *testing.T) {
	st := newTestStore(t)
	sub, _ := st.UpsertSubmission("a1", rubric.Student{ID: "S1", Name: "Ada"})

	got, err := st.SetStudentName(sub.ID, "Ada Lovelace")
	if err != nil {
		t.Fatalf("SetStudentName: %v", err)
	}
	if got.Student.Name != "Ada Lovelace" {
		t.Errorf("name = %q", got.Student.Name)
	}

	got, err = st.SetStudentID(sub.ID, "S1-new")
	if err != nil {
		t.Fatalf("SetStudentID: %v", err)
	}
	if got.Student.ID != "S1-new" {
		t.Errorf("student id = %q", got.Student.ID)
	}
}

func TestClearByAssignment(t *testing.T) {
	st := newTestStore(t)
	if err := st.PutAssignment(rubric.Assignment{ID: "a2", Title: "Other"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	_, _ = st.UpsertSubmission("a1", rubric.Student{ID: "S1"})
	_, _ = st.UpsertSubmission("a2", rubric.Student{ID: "S1"})

	if err := st.DeleteSubmissionsByAssignment("a1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	all, _ := st.ListSubmissions()
	if len(all) != 1 || all[0].AssignmentID != "a2" {
		t.Errorf("submissions = %+v", all)
	}
}

func TestReplaceAll(t *testing.T) {
	st := newTestStore(t)
	_, _ = st.UpsertSubmission("a1", rubric.Student{ID: "S1"})

	err := st.ReplaceAll(
		[]rubric.Assignment{{ID: "b1", Title: "Restored"}},
		[]rubric.Submission{{ID: "r1", AssignmentID: "b1", Student: rubric.Student{ID: "S2"}, Selected: rubric.Selection{}}},
	)
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	as, _ := st.ListAssignments()
	subs, _ := st.ListSubmissions()
	if len(as) != 1 || as[0].ID != "b1" {
		t.Errorf("assignments = %+v", as)
	}
	if len(subs) != 1 || subs[0].ID != "r1" {
		t.Errorf("submissions = %+v", subs)
	}
}
