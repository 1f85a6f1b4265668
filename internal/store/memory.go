package store

import (
	"sync"

	"github.com/scorebook/scorebook/internal/rubric"
)

// memoryStore keeps both collections as slices so iteration order is
// insertion order. Every mutation builds a fresh slice and swaps it in under
// the mutex, so a reader holding a previous snapshot never sees a partial
// update.
type memoryStore struct {
	mu          sync.RWMutex
	assignments []rubric.Assignment
	submissions []rubric.Submission

	gen       rubric.IDGen
	baseScore float64
}

func NewInMemoryStore(gen rubric.IDGen, baseScore float64) Store {
	return &memoryStore{gen: gen, baseScore: baseScore}
}

func (m *memoryStore) PutAssignment(a rubric.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make([]rubric.Assignment, len(m.assignments))
	copy(next, m.assignments)
	for i := range next {
		if next[i].ID == a.ID {
			next[i] = a
			m.assignments = next
			return nil
		}
	}
	m.assignments = append(next, a)
	return nil
}

func (m *memoryStore) GetAssignment(id string) (rubric.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return rubric.Assignment{}, ErrAssignmentNotFound
}

func (m *memoryStore) ListAssignments() ([]rubric.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]rubric.Assignment, len(m.assignments))
	copy(out, m.assignments)
	return out, nil
}

func (m *memoryStore) DeleteAssignment(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make([]rubric.Assignment, 0, len(m.assignments))
	for _, a := range m.assignments {
		if a.ID != id {
			next = append(next, a)
		}
	}
	m.assignments = next
	return nil
}

func (m *memoryStore) ReplaceQuestions(assignmentID string, questions []rubric.Question) (rubric.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make([]rubric.Assignment, len(m.assignments))
	copy(next, m.assignments)
	for i := range next {
		if next[i].ID != assignmentID {
			continue
		}
		next[i].Questions = questions
		m.assignments = next
		m.submissions = rubric.RecalculateAll(next[i], m.submissions, m.baseScore)
		return next[i], nil
	}
	return rubric.Assignment{}, ErrAssignmentNotFound
}

func (m *memoryStore) UpsertSubmission(assignmentID string, student rubric.Student) (rubric.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID && s.Student.ID == student.ID {
			return s, nil
		}
	}
	sub := rubric.Submission{
		ID:           m.gen(),
		AssignmentID: assignmentID,
		Student:      student,
		Selected:     rubric.Selection{},
		Score:        m.baseScore,
	}
	next := make([]rubric.Submission, len(m.submissions), len(m.submissions)+1)
	copy(next, m.submissions)
	m.submissions = append(next, sub)
	return sub, nil
}

func (m *memoryStore) GetSubmission(id string) (rubric.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.submissions {
		if s.ID == id {
			return s, nil
		}
	}
	return rubric.Submission{}, ErrSubmissionNotFound
}

func (m *memoryStore) ListSubmissions() ([]rubric.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]rubric.Submission, len(m.submissions))
	copy(out, m.submissions)
	return out, nil
}

func (m *memoryStore) ListSubmissionsByAssignment(assignmentID string) ([]rubric.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []rubric.Submission
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memoryStore) DeleteSubmission(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make([]rubric.Submission, 0, len(m.submissions))
	for _, s := range m.submissions {
		if s.ID != id {
			next = append(next, s)
		}
	}
	m.submissions = next
	return nil
}

func (m *memoryStore) DeleteSubmissionsByAssignment(assignmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make([]rubric.Submission, 0, len(m.submissions))
	for _, s := range m.submissions {
		if s.AssignmentID != assignmentID {
			next = append(next, s)
		}
	}
	m.submissions = next
	return nil
}

func (m *memoryStore) SetSelection(submissionID string, sel rubric.Selection) (rubric.Submission, error) {
	return m.updateSubmission(submissionID, func(s *rubric.Submission) {
		s.Selected = sel.Normalize()
	})
}

func (m *memoryStore) SetQuestionSelection(submissionID, questionID string, commentIDs []string) (rubric.Submission, error) {
	return m.updateSubmission(submissionID, func(s *rubric.Submission) {
		next := s.Selected.Clone()
		next[questionID] = rubric.NewCommentSet(commentIDs...)
		s.Selected = next
	})
}

func (m *memoryStore) SetStudentName(submissionID, name string) (rubric.Submission, error) {
	return m.updateSubmission(submissionID, func(s *rubric.Submission) {
		s.Student.Name = name
	})
}

func (m *memoryStore) SetStudentID(submissionID, studentID string) (rubric.Submission, error) {
	return m.updateSubmission(submissionID, func(s *rubric.Submission) {
		s.Student.ID = studentID
	})
}

// updateSubmission applies fn to a copy of the submission, refreshes its score
// when the owning assignment still exists, and swaps in the new slice.
func (m *memoryStore) updateSubmission(id string, fn func(*rubric.Submission)) (rubric.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make([]rubric.Submission, len(m.submissions))
	copy(next, m.submissions)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		fn(&next[i])
		for _, a := range m.assignments {
			if a.ID == next[i].AssignmentID {
				next[i].Score = rubric.ComputeScore(a, next[i], m.baseScore)
				break
			}
		}
		m.submissions = next
		return next[i], nil
	}
	return rubric.Submission{}, ErrSubmissionNotFound
}

func (m *memoryStore) ReplaceSubmissions(subs []rubric.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make([]rubric.Submission, len(subs))
	copy(next, subs)
	m.submissions = next
	return nil
}

func (m *memoryStore) ReplaceAll(assignments []rubric.Assignment, subs []rubric.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	nextA := make([]rubric.Assignment, len(assignments))
	copy(nextA, assignments)
	nextS := make([]rubric.Submission, len(subs))
	copy(nextS, subs)
	m.assignments = nextA
	m.submissions = nextS
	return nil
}
