package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/scorebook/scorebook/internal/rubric"
	"github.com/scorebook/scorebook/internal/store"
)

// GET /assignments/{assignmentID}/markdown
func GetMarkdownHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := st.GetAssignment(chi.URLParam(r, "assignmentID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, rubric.ToMarkdown(a))
	}
}

// PUT /assignments/{assignmentID}/markdown
// Parses the hand-edited rubric text and atomically replaces the question
// list; the store recalculates the assignment's submission scores as part of
// the same operation. Nothing is applied when the body can't be read.
func PutMarkdownHandler(st store.Store, gen rubric.IDGen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := st.GetAssignment(chi.URLParam(r, "assignmentID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read rubric text", 400)
			return
		}
		parsed := rubric.FromMarkdown(string(body), a, gen)
		updated, err := st.ReplaceQuestions(a.ID, parsed.Questions)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, updated)
	}
}
