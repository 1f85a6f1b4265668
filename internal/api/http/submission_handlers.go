package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/scorebook/scorebook/internal/rubric"
	"github.com/scorebook/scorebook/internal/store"
)

// POST /assignments/{assignmentID}/submissions
// Upsert keyed by (assignmentID, student.id): returns the existing submission
// if the student already has one, otherwise creates it.
func UpsertSubmissionHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var student rubric.Student
		if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
			http.Error(w, "bad json: "+err.Error(), 400)
			return
		}
		if strings.TrimSpace(student.ID) == "" {
			http.Error(w, "student id required", 400)
			return
		}
		sub, err := st.UpsertSubmission(chi.URLParam(r, "assignmentID"), student)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, sub)
	}
}

// GET /assignments/{assignmentID}/submissions
func ListSubmissionsHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := st.ListSubmissionsByAssignment(chi.URLParam(r, "assignmentID"))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if subs == nil {
			subs = []rubric.Submission{}
		}
		writeJSON(w, subs)
	}
}

// DELETE /assignments/{assignmentID}/submissions
func ClearSubmissionsHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.DeleteSubmissionsByAssignment(chi.URLParam(r, "assignmentID")); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /submissions/{submissionID}
func GetSubmissionHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := st.GetSubmission(chi.URLParam(r, "submissionID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, sub)
	}
}

// DELETE /submissions/{submissionID}
func DeleteSubmissionHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.DeleteSubmission(chi.URLParam(r, "submissionID")); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type selectionReq struct {
	// Either a whole map...
	Selected rubric.Selection `json:"selected,omitempty"`
	// ...or a single question's set.
	QuestionID string   `json:"questionId,omitempty"`
	CommentIDs []string `json:"commentIds,omitempty"`
}

// PUT /submissions/{submissionID}/selection
// The store recomputes the cached score as part of the update.
func UpdateSelectionHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), 400)
			return
		}
		id := chi.URLParam(r, "submissionID")

		var sub rubric.Submission
		var err error
		if req.QuestionID != "" {
			sub, err = st.SetQuestionSelection(id, req.QuestionID, req.CommentIDs)
		} else if req.Selected != nil {
			sub, err = st.SetSelection(id, req.Selected)
		} else {
			http.Error(w, "selected or questionId required", 400)
			return
		}
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, sub)
	}
}

type studentReq struct {
	Name *string `json:"name,omitempty"`
	ID   *string `json:"id,omitempty"`
}

// PUT /submissions/{submissionID}/student
func UpdateStudentHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req studentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), 400)
			return
		}
		id := chi.URLParam(r, "submissionID")

		sub, err := st.GetSubmission(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if req.Name != nil {
			if sub, err = st.SetStudentName(id, *req.Name); err != nil {
				writeStoreError(w, err)
				return
			}
		}
		if req.ID != nil {
			if sub, err = st.SetStudentID(id, *req.ID); err != nil {
				writeStoreError(w, err)
				return
			}
		}
		writeJSON(w, sub)
	}
}

// GET /submissions/{submissionID}/transcript
func TranscriptHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := st.GetSubmission(chi.URLParam(r, "submissionID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		a, err := st.GetAssignment(sub.AssignmentID)
		if err != nil {
			// Dangling assignment reference: nothing derivable, empty transcript.
			return
		}
		_, _ = w.Write([]byte(rubric.GenerateTranscript(a, sub)))
	}
}
