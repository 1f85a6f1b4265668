package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/scorebook/scorebook/internal/rubric"
	"github.com/scorebook/scorebook/internal/storage"
	"github.com/scorebook/scorebook/internal/store"
)

// Mount attaches every API route to r.
func Mount(r chi.Router, st store.Store, gen rubric.IDGen, baseScore float64, snaps storage.SnapshotStore) {
	r.Route("/assignments", func(ar chi.Router) {
		ar.Get("/", ListAssignmentsHandler(st))
		ar.Post("/", CreateAssignmentHandler(st, gen))
		ar.Post("/import", ImportAssignmentHandler(st))

		ar.Route("/{assignmentID}", func(one chi.Router) {
			one.Get("/", GetAssignmentHandler(st))
			one.Put("/", UpdateAssignmentHandler(st))
			one.Delete("/", DeleteAssignmentHandler(st))

			one.Get("/markdown", GetMarkdownHandler(st))
			one.Put("/markdown", PutMarkdownHandler(st, gen))

			one.Post("/submissions", UpsertSubmissionHandler(st))
			one.Get("/submissions", ListSubmissionsHandler(st))
			one.Delete("/submissions", ClearSubmissionsHandler(st))

			one.Get("/grades.csv", GradesCSVHandler(st))
		})
	})

	r.Route("/submissions", func(sr chi.Router) {
		sr.Post("/import", ImportSubmissionsHandler(st, gen, baseScore))
		sr.Route("/{submissionID}", func(one chi.Router) {
			one.Get("/", GetSubmissionHandler(st))
			one.Delete("/", DeleteSubmissionHandler(st))
			one.Put("/selection", UpdateSelectionHandler(st))
			one.Put("/student", UpdateStudentHandler(st))
			one.Get("/transcript", TranscriptHandler(st))
		})
	})

	r.Get("/backup", BackupHandler(st, snaps))
	r.Post("/backup", RestoreHandler(st, baseScore))
}
