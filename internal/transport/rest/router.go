package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/kab1012/budget-tracker/internal/auth"
	"github.com/kab1012/budget-tracker/internal/budget"
	"github.com/kab1012/budget-tracker/internal/category"
	"github.com/kab1012/budget-tracker/internal/summary"
	"github.com/kab1012/budget-tracker/internal/transaction"
	"github.com/kab1012/budget-tracker/internal/transport/middleware"
	"github.com/kab1012/budget-tracker/internal/transport/swagger"
	"github.com/kab1012/budget-tracker/internal/user"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	User        *user.Handler
	Category    *category.Handler
	Transaction *transaction.Handler
	Budget      *budget.Handler
	Summary     *summary.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below is scoped to the authenticated user.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", h.Category.ListCategories)
				cr.Post("/", h.Category.CreateCategory)
				cr.Get("/{id}", h.Category.GetCategory)
				cr.Put("/{id}", h.Category.UpdateCategory)
				cr.Delete("/{id}", h.Category.DeleteCategory)
			})

			pr.Route("/transactions", func(tr chi.Router) {
				// Registered before {id} so "summary" is never parsed as an ID.
				tr.Get("/summary", h.Summary.GetSummary)

				tr.Get("/", h.Transaction.ListTransactions)
				tr.Post("/", h.Transaction.CreateTransaction)
				tr.Get("/{id}", h.Transaction.GetTransaction)
				tr.Put("/{id}", h.Transaction.UpdateTransaction)
				tr.Delete("/{id}", h.Transaction.DeleteTransaction)
			})

			pr.Route("/budgets", func(br chi.Router) {
				br.Get("/", h.Budget.ListBudgets)
				br.Post("/", h.Budget.CreateBudget)
				br.Get("/{id}", h.Budget.GetBudget)
				br.Put("/{id}", h.Budget.UpdateBudget)
				br.Delete("/{id}", h.Budget.DeleteBudget)
			})
		})
	})
}
