package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mixforge/mixforge-api/internal/api"
	apiMiddleware "github.com/mixforge/mixforge-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	generationHandler := api.NewGenerationHandler(app.relayService)
	cleanupHandler := api.NewCleanupHandler(app.sweep, app.config.Cleanup.RetentionDays)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", generationHandler.Submit)
		r.Post("/generate/callback", generationHandler.Callback)
		r.Get("/generate/status", generationHandler.Status)

		r.Post("/cleanup", cleanupHandler.Run)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
