package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/careerbridge/assessment/internal/api/http"
	auth "github.com/careerbridge/assessment/internal/auth/middleware"
	"github.com/careerbridge/assessment/internal/config"
	"github.com/careerbridge/assessment/internal/db"
	"github.com/careerbridge/assessment/internal/eventlog"
	"github.com/careerbridge/assessment/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // optional .env for local runs
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	if err := auth.EnsureUser(ctx, dbh, cfg.SeedUser, cfg.SeedPass, "mentee"); err != nil {
		log.Fatalf("seed user: %v", err)
	}

	st := store.NewSQLStore(dbh)
	events := eventlog.NewEventRepo(dbh)
	authSvc := auth.NewAuthService(cfg.JWTSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Protected API (JWT → subject/role in context)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Get("/tests", api.GetOrCreateTestHandler(st))
		pr.Put("/tests/{section}/progress", api.SaveProgressHandler(st))
		pr.Post("/tests/{section}/validate", api.ValidateSectionHandler())
		pr.Post("/tests/{section}/submit", api.SubmitHandler(st, events))
		pr.Get("/tests/{section}/result", api.GetResultHandler(st))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
