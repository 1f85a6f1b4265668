package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/scorebook/scorebook/internal/rubric"
	"github.com/scorebook/scorebook/internal/store"
)

// GET /assignments
func ListAssignmentsHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := st.ListAssignments()
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if list == nil {
			list = []rubric.Assignment{}
		}
		writeJSON(w, list)
	}
}

// POST /assignments
func CreateAssignmentHandler(st store.Store, gen rubric.IDGen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a rubric.Assignment
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			http.Error(w, "bad json: "+err.Error(), 400)
			return
		}
		if strings.TrimSpace(a.Title) == "" {
			http.Error(w, "title required", 400)
			return
		}
		if a.ID == "" {
			a.ID = gen()
		}
		if a.Questions == nil {
			a.Questions = []rubric.Question{}
		}
		if err := st.PutAssignment(a); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, a)
	}
}

// POST /assignments/import
// Accepts a previously exported assignment document. The shape check happens
// here, before anything reaches the store: truthy id, truthy title, and a
// questions array.
func ImportAssignmentHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw struct {
			ID        string          `json:"id"`
			Title     string          `json:"title"`
			Questions json.RawMessage `json:"questions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "bad json: "+err.Error(), 400)
			return
		}
		if raw.ID == "" || raw.Title == "" || !isJSONArray(raw.Questions) {
			http.Error(w, "not a valid assignment file", 400)
			return
		}
		var questions []rubric.Question
		if err := json.Unmarshal(raw.Questions, &questions); err != nil {
			http.Error(w, "not a valid assignment file", 400)
			return
		}
		if questions == nil {
			questions = []rubric.Question{}
		}
		a := rubric.Assignment{ID: raw.ID, Title: raw.Title, Questions: questions}
		if err := st.PutAssignment(a); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, a)
	}
}

// GET /assignments/{assignmentID}
func GetAssignmentHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := st.GetAssignment(chi.URLParam(r, "assignmentID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, a)
	}
}

// PUT /assignments/{assignmentID}
func UpdateAssignmentHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "assignmentID")
		if _, err := st.GetAssignment(id); err != nil {
			writeStoreError(w, err)
			return
		}
		var a rubric.Assignment
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			http.Error(w, "bad json: "+err.Error(), 400)
			return
		}
		a.ID = id
		if strings.TrimSpace(a.Title) == "" {
			http.Error(w, "title required", 400)
			return
		}
		if a.Questions == nil {
			a.Questions = []rubric.Question{}
		}
		if err := st.PutAssignment(a); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, a)
	}
}

// DELETE /assignments/{assignmentID}
// Submissions for the assignment are kept; they become orphans the rest of
// the system tolerates.
func DeleteAssignmentHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.DeleteAssignment(chi.URLParam(r, "assignmentID")); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func isJSONArray(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return strings.HasPrefix(s, "[")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrAssignmentNotFound) || errors.Is(err, store.ErrSubmissionNotFound) {
		http.Error(w, err.Error(), 404)
		return
	}
	http.Error(w, err.Error(), 500)
}
