package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/crucial707/expense-api/internal/config"
	"github.com/crucial707/expense-api/internal/handlers"
	mw "github.com/crucial707/expense-api/internal/middleware"
	"github.com/crucial707/expense-api/internal/repo"
	"github.com/crucial707/expense-api/internal/token"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter builds the full HTTP handler chain. Shared with the integration
// tests so they exercise the same middleware stack as production.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	tokens := token.New([]byte(cfg.JWTSecret), time.Duration(cfg.JWTExpireDays)*24*time.Hour)

	userRepo := repo.NewUserRepo(db)
	expenseRepo := repo.NewExpenseRepo(db)

	authHandler := &handlers.AuthHandler{UserRepo: userRepo, Tokens: tokens}
	expenseHandler := &handlers.ExpenseHandler{Repo: expenseRepo}
	meHandler := &handlers.MeHandler{UserRepo: userRepo}

	hsts := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.RequestLog)
	r.Use(mw.Recoverer)
	r.Use(mw.Prometheus)
	r.Use(mw.SecurityHeaders(hsts))
	r.Use(mw.CORS(cfg.CORSAllowedOrigins))
	r.Use(mw.MaxBytes(mw.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public: register and login carry a per-IP limiter against credential abuse.
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthRateLimiter().Middleware)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Protected: everything below requires a valid Bearer token.
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth(tokens))
		r.Get("/expenses", expenseHandler.ListExpenses)
		r.Post("/expenses", expenseHandler.AddExpense)
		r.Put("/expenses/{id}", expenseHandler.UpdateExpense)
		r.Delete("/expenses/{id}", expenseHandler.DeleteExpense)
		r.Get("/me", meHandler.GetMe)
	})

	return r
}
