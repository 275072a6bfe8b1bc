/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions. This
  is the wiring layer connecting URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the web frontend

SECURITY NOTE:
  No authentication middleware. Single-user deployment behind the counter;
  all endpoints are open on the bound interface.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Medication routes
		r.Route("/medications", func(r chi.Router) {
			r.Get("/", h.ListMedications)
			r.Post("/", h.AddMedication)
			r.Get("/categories", h.ListCategories)
			r.Put("/{id}", h.UpdateMedication)
			r.Delete("/{id}", h.DeleteMedication)
		})

		// Movement routes
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", h.ListEntries)
			r.Post("/", h.ApplyEntry)
			r.Put("/{id}", h.EditEntry)
			r.Delete("/{id}", h.DeleteEntry)
		})
		r.Route("/exits", func(r chi.Router) {
			r.Get("/", h.ListExits)
			r.Post("/", h.ApplyExit)
			r.Put("/{id}", h.EditExit)
			r.Delete("/{id}", h.DeleteExit)
		})

		// Settings routes
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.UpdateSettings)
		})

		// Read-only views
		r.Get("/dashboard", h.Dashboard)
		r.Get("/alerts", h.Alerts)
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/stock", h.StockChart)
			r.Get("/categories", h.CategoryChart)
			r.Get("/movement", h.MovementChart)
			r.Get("/days-of-stock/{id}", h.DaysOfStock)
		})

		// Notification routes
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.ListNotifications)
			r.Delete("/{id}", h.DismissNotification)
		})
	})

	return r
}
