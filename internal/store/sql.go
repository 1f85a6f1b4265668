package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/scorebook/scorebook/internal/rubric"
)

// SQLStore persists both collections with nested structures as JSON columns.
// Works against either driver registered by internal/db.
type SQLStore struct {
	db        *sql.DB
	gen       rubric.IDGen
	baseScore float64
}

func NewSQLStore(db *sql.DB, gen rubric.IDGen, baseScore float64) *SQLStore {
	return &SQLStore{db: db, gen: gen, baseScore: baseScore}
}

func (s *SQLStore) PutAssignment(a rubric.Assignment) error {
	qj, err := json.Marshal(a.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO assignments (id,title,questions_json,pos,created_at)
		VALUES ($1,$2,$3,(SELECT COALESCE(MAX(pos),0)+1 FROM assignments),$4)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, questions_json=EXCLUDED.questions_json`,
		a.ID, a.Title, string(qj), time.Now().Unix())
	return err
}

func (s *SQLStore) GetAssignment(id string) (rubric.Assignment, error) {
	row := s.db.QueryRow(`SELECT id,title,questions_json FROM assignments WHERE id=$1`, id)
	return scanAssignment(row)
}

func (s *SQLStore) ListAssignments() ([]rubric.Assignment, error) {
	rows, err := s.db.Query(`SELECT id,title,questions_json FROM assignments ORDER BY pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []rubric.Assignment
	for rows.Next() {
		var a rubric.Assignment
		var qjson string
		if err := rows.Scan(&a.ID, &a.Title, &qjson); err != nil {
			return nil, err
		}
		// An undecodable blob is treated as an absent record, not an error.
		if json.Unmarshal([]byte(qjson), &a.Questions) != nil {
			continue
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteAssignment(id string) error {
	_, err := s.db.Exec(`DELETE FROM assignments WHERE id=$1`, id)
	return err
}

func (s *SQLStore) ReplaceQuestions(assignmentID string, questions []rubric.Question) (rubric.Assignment, error) {
	a, err := s.GetAssignment(assignmentID)
	if err != nil {
		return rubric.Assignment{}, err
	}
	a.Questions = questions
	qj, err := json.Marshal(questions)
	if err != nil {
		return rubric.Assignment{}, err
	}
	if _, err := s.db.Exec(`UPDATE assignments SET questions_json=$1 WHERE id=$2`, string(qj), assignmentID); err != nil {
		return rubric.Assignment{}, err
	}

	// Structure changed; refresh every cached score for this assignment.
	subs, err := s.ListSubmissionsByAssignment(assignmentID)
	if err != nil {
		return rubric.Assignment{}, err
	}
	for _, sub := range rubric.RecalculateAll(a, subs, s.baseScore) {
		if _, err := s.db.Exec(`UPDATE submissions SET score=$1 WHERE id=$2`, sub.Score, sub.ID); err != nil {
			return rubric.Assignment{}, err
		}
	}
	return a, nil
}

func (s *SQLStore) UpsertSubmission(assignmentID string, student rubric.Student) (rubric.Submission, error) {
	row := s.db.QueryRow(`SELECT id,assignment_id,student_id,student_name,selected_json,score
		FROM submissions WHERE assignment_id=$1 AND student_id=$2`, assignmentID, student.ID)
	sub, err := scanSubmission(row)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, ErrSubmissionNotFound) {
		return rubric.Submission{}, err
	}

	sub = rubric.Submission{
		ID:           s.gen(),
		AssignmentID: assignmentID,
		Student:      student,
		Selected:     rubric.Selection{},
		Score:        s.baseScore,
	}
	if err := s.insertSubmission(s.db, sub); err != nil {
		return rubric.Submission{}, err
	}
	return sub, nil
}

func (s *SQLStore) GetSubmission(id string) (rubric.Submission, error) {
	row := s.db.QueryRow(`SELECT id,assignment_id,student_id,student_name,selected_json,score
		FROM submissions WHERE id=$1`, id)
	return scanSubmission(row)
}

func (s *SQLStore) ListSubmissions() ([]rubric.Submission, error) {
	return s.querySubmissions(`SELECT id,assignment_id,student_id,student_name,selected_json,score
		FROM submissions ORDER BY pos`)
}

func (s *SQLStore) ListSubmissionsByAssignment(assignmentID string) ([]rubric.Submission, error) {
	return s.querySubmissions(`SELECT id,assignment_id,student_id,student_name,selected_json,score
		FROM submissions WHERE assignment_id=$1 ORDER BY pos`, assignmentID)
}

func (s *SQLStore) DeleteSubmission(id string) error {
	_, err := s.db.Exec(`DELETE FROM submissions WHERE id=$1`, id)
	return err
}

func (s *SQLStore) DeleteSubmissionsByAssignment(assignmentID string) error {
	_, err := s.db.Exec(`DELETE FROM submissions WHERE assignment_id=$1`, assignmentID)
	return err
}

func (s *SQLStore) SetSelection(submissionID string, sel rubric.Selection) (rubric.Submission, error) {
	return s.updateSubmission(submissionID, func(sub *rubric.Submission) {
		sub.Selected = sel.Normalize()
	})
}

func (s *SQLStore) SetQuestionSelection(submissionID, questionID string, commentIDs []string) (rubric.Submission, error) {
	return s.updateSubmission(submissionID, func(sub *rubric.Submission) {
		next := sub.Selected.Clone()
		next[questionID] = rubric.NewCommentSet(commentIDs...)
		sub.Selected = next
	})
}

func (s *SQLStore) SetStudentName(submissionID, name string) (rubric.Submission, error) {
	return s.updateSubmission(submissionID, func(sub *rubric.Submission) {
		sub.Student.Name = name
	})
}

func (s *SQLStore) SetStudentID(submissionID, studentID string) (rubric.Submission, error) {
	return s.updateSubmission(submissionID, func(sub *rubric.Submission) {
		sub.Student.ID = studentID
	})
}

func (s *SQLStore) updateSubmission(id string, fn func(*rubric.Submission)) (rubric.Submission, error) {
	sub, err := s.GetSubmission(id)
	if err != nil {
		return rubric.Submission{}, err
	}
	fn(&sub)
	if a, err := s.GetAssignment(sub.AssignmentID); err == nil {
		sub.Score = rubric.ComputeScore(a, sub, s.baseScore)
	}
	selJSON, err := json.Marshal(sub.Selected)
	if err != nil {
		return rubric.Submission{}, err
	}
	_, err = s.db.Exec(`UPDATE submissions SET student_id=$1, student_name=$2, selected_json=$3, score=$4 WHERE id=$5`,
		sub.Student.ID, sub.Student.Name, string(selJSON), sub.Score, id)
	if err != nil {
		return rubric.Submission{}, err
	}
	return sub, nil
}

func (s *SQLStore) ReplaceSubmissions(subs []rubric.Submission) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM submissions`); err != nil {
		return err
	}
	for _, sub := range subs {
		if err := s.insertSubmission(tx, sub); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) ReplaceAll(assignments []rubric.Assignment, subs []rubric.Submission) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM assignments`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM submissions`); err != nil {
		return err
	}
	for _, a := range assignments {
		qj, err := json.Marshal(a.Questions)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO assignments (id,title,questions_json,pos,created_at)
			VALUES ($1,$2,$3,(SELECT COALESCE(MAX(pos),0)+1 FROM assignments),$4)`,
			a.ID, a.Title, string(qj), time.Now().Unix()); err != nil {
			return err
		}
	}
	for _, sub := range subs {
		if err := s.insertSubmission(tx, sub); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *SQLStore) insertSubmission(e execer, sub rubric.Submission) error {
	selJSON, err := json.Marshal(sub.Selected)
	if err != nil {
		return err
	}
	_, err = e.Exec(`INSERT INTO submissions (id,assignment_id,student_id,student_name,selected_json,score,pos,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,(SELECT COALESCE(MAX(pos),0)+1 FROM submissions),$7)`,
		sub.ID, sub.AssignmentID, sub.Student.ID, sub.Student.Name, string(selJSON), sub.Score, time.Now().Unix())
	return err
}

func (s *SQLStore) querySubmissions(query string, args ...any) ([]rubric.Submission, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []rubric.Submission
	for rows.Next() {
		var sub rubric.Submission
		var selJSON string
		if err := rows.Scan(&sub.ID, &sub.AssignmentID, &sub.Student.ID, &sub.Student.Name, &selJSON, &sub.Score); err != nil {
			return nil, err
		}
		if json.Unmarshal([]byte(selJSON), &sub.Selected) != nil {
			continue
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func scanAssignment(row *sql.Row) (rubric.Assignment, error) {
	var a rubric.Assignment
	var qjson string
	if err := row.Scan(&a.ID, &a.Title, &qjson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rubric.Assignment{}, ErrAssignmentNotFound
		}
		return rubric.Assignment{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &a.Questions); err != nil {
		return rubric.Assignment{}, err
	}
	return a, nil
}

func scanSubmission(row *sql.Row) (rubric.Submission, error) {
	var sub rubric.Submission
	var selJSON string
	if err := row.Scan(&sub.ID, &sub.AssignmentID, &sub.Student.ID, &sub.Student.Name, &selJSON, &sub.Score); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rubric.Submission{}, ErrSubmissionNotFound
		}
		return rubric.Submission{}, err
	}
	if err := json.Unmarshal([]byte(selJSON), &sub.Selected); err != nil {
		return rubric.Submission{}, err
	}
	return sub, nil
}
