package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/scorebook/scorebook/internal/api/http"
	"github.com/scorebook/scorebook/internal/config"
	"github.com/scorebook/scorebook/internal/db"
	"github.com/scorebook/scorebook/internal/rubric"
	"github.com/scorebook/scorebook/internal/storage"
	"github.com/scorebook/scorebook/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()
	gen := rubric.NewIDGen()

	var st store.Store
	if cfg.DBDriver == "memory" {
		st = store.NewInMemoryStore(gen, cfg.BaseScore)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		st = store.NewSQLStore(dbh, gen, cfg.BaseScore)
	}

	snaps, err := storage.NewFSStore(cfg.SnapshotPath)
	if err != nil {
		log.Fatalf("snapshot store: %v", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:         300,
	}))

	api.Mount(r, st, gen, cfg.BaseScore, snaps)

	log.Printf("scorebookd listening on %s (driver=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
