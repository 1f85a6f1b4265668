package store

import (
	"errors"

	"github.com/scorebook/scorebook/internal/rubric"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// Store is the persistence boundary for assignments and submissions. Mutations
// that touch the rubric structure or a submission's selections also refresh
// the affected cached scores, so readers never observe a stale derivation.
type Store interface {
	PutAssignment(a rubric.Assignment) error
	GetAssignment(id string) (rubric.Assignment, error)
	ListAssignments() ([]rubric.Assignment, error)
	// DeleteAssignment removes the assignment only. Its submissions are left
	// behind deliberately; downstream consumers tolerate the dangling reference.
	DeleteAssignment(id string) error
	// ReplaceQuestions swaps the assignment's question list (the markdown save
	// path) and recalculates every submission score for that assignment.
	ReplaceQuestions(assignmentID string, questions []rubric.Question) (rubric.Assignment, error)

	// UpsertSubmission returns the submission for (assignmentID, student.ID),
	// creating one with empty selections and the base score if none exists.
	UpsertSubmission(assignmentID string, student rubric.Student) (rubric.Submission, error)
	GetSubmission(id string) (rubric.Submission, error)
	ListSubmissions() ([]rubric.Submission, error)
	ListSubmissionsByAssignment(assignmentID string) ([]rubric.Submission, error)
	DeleteSubmission(id string) error
	DeleteSubmissionsByAssignment(assignmentID string) error

	// SetSelection replaces the whole selection map; SetQuestionSelection
	// replaces one question's set. Both recompute the score against the owning
	// assignment (a dangling assignment reference leaves the score untouched).
	SetSelection(submissionID string, sel rubric.Selection) (rubric.Submission, error)
	SetQuestionSelection(submissionID, questionID string, commentIDs []string) (rubric.Submission, error)
	SetStudentName(submissionID, name string) (rubric.Submission, error)
	SetStudentID(submissionID, studentID string) (rubric.Submission, error)

	// ReplaceSubmissions writes back a merge result wholesale.
	ReplaceSubmissions(subs []rubric.Submission) error
	// ReplaceAll swaps both collections (backup restore).
	ReplaceAll(assignments []rubric.Assignment, subs []rubric.Submission) error
}
