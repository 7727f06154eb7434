package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/crucial707/notes-api/internal/auth"
	"github.com/crucial707/notes-api/internal/config"
	"github.com/crucial707/notes-api/internal/handlers"
	"github.com/crucial707/notes-api/internal/middleware"
	"github.com/crucial707/notes-api/internal/repo"
	"github.com/crucial707/notes-api/internal/serializers"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(database)
	noteRepo := repo.NewNoteRepo(database)

	issuer := auth.NewIssuer(
		[]byte(cfg.JWTSecret),
		time.Duration(cfg.AccessTokenMinutes)*time.Minute,
		time.Duration(cfg.RefreshTokenHours)*time.Hour,
	)

	accountHandler := &handlers.AccountHandler{
		Accounts: &serializers.AccountSerializer{Users: userRepo, BcryptCost: cfg.BcryptCost},
	}
	authHandler := &handlers.AuthHandler{UserRepo: userRepo, Issuer: issuer}
	noteHandler := &handlers.NoteHandler{Repo: noteRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := database.PingContext(ctx); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRateLimiter().Middleware)
			r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
			r.Post("/user/register/", accountHandler.Register)
			r.Post("/token/", authHandler.ObtainToken)
			r.Post("/token/refresh/", authHandler.RefreshToken)
		})

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTMiddleware(issuer))
			r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
			r.Get("/notes/", noteHandler.ListNotes)
			r.Post("/notes/", noteHandler.CreateNote)
			r.Delete("/notes/delete/{id}/", noteHandler.DeleteNote)
		})
	})

	return r
}
