package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/scorebook/scorebook/internal/export"
	"github.com/scorebook/scorebook/internal/rubric"
	"github.com/scorebook/scorebook/internal/storage"
	"github.com/scorebook/scorebook/internal/store"
)

// GET /assignments/{assignmentID}/grades.csv
func GradesCSVHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := st.GetAssignment(chi.URLParam(r, "assignmentID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		subs, err := st.ListSubmissionsByAssignment(a.ID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+a.Title+`-grades.csv"`)
		_, _ = io.WriteString(w, export.GradesCSV(a, subs))
	}
}

// GET /backup
// Serves the full-state document and mirrors it into the snapshot store, so
// there is a copy on disk independent of the download.
func BackupHandler(st store.Store, snaps storage.SnapshotStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignments, err := st.ListAssignments()
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		subs, err := st.ListSubmissions()
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		b := export.NewBackup(assignments, subs)

		var buf bytes.Buffer
		if err := b.Encode(&buf); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if snaps != nil {
			if _, err := snaps.Put(storage.SnapshotName(time.Now()), bytes.NewReader(buf.Bytes())); err != nil {
				log.Printf("backup snapshot write failed: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(buf.Bytes())
	}
}

// POST /backup
// Restores both collections wholesale, then refreshes every cached score so
// the restored state is internally consistent even if the file was edited.
func RestoreHandler(st store.Store, baseScore float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := export.DecodeBackup(r.Body)
		if err != nil {
			http.Error(w, "not a valid backup file", 400)
			return
		}
		subs := b.Submissions
		for _, a := range b.Assignments {
			subs = rubric.RecalculateAll(a, subs, baseScore)
		}
		if err := st.ReplaceAll(b.Assignments, subs); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]int{
			"assignments": len(b.Assignments),
			"submissions": len(subs),
		})
	}
}

// POST /submissions/import
// Merges an exported submission batch into the store by (assignmentId,
// student.id) identity, then recomputes scores for every assignment the batch
// touched so incoming scores line up with the current rubric structure.
func ImportSubmissionsHandler(st store.Store, gen rubric.IDGen, baseScore float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var incoming []rubric.Submission
		if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
			http.Error(w, "not a valid submissions file", 400)
			return
		}
		existing, err := st.ListSubmissions()
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		merged := rubric.Merge(existing, incoming, gen)

		touched := map[string]bool{}
		for _, sub := range incoming {
			touched[sub.AssignmentID] = true
		}
		for aid := range touched {
			a, err := st.GetAssignment(aid)
			if err != nil {
				continue // dangling assignment reference: keep imported scores as-is
			}
			merged = rubric.RecalculateAll(a, merged, baseScore)
		}

		if err := st.ReplaceSubmissions(merged); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]int{"merged": len(incoming), "total": len(merged)})
	}
}
