package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/braindump-api/internal/api"
	apiMiddleware "github.com/phrazzld/braindump-api/internal/api/middleware"
	"github.com/phrazzld/braindump-api/internal/api/shared"
	"github.com/phrazzld/braindump-api/internal/web"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	extractionHandler := api.NewExtractionHandler(
		app.taskExtractor(),
		app.config.Extraction.Categories,
		app.eventEmitter,
		app.config.LLM.RequestTimeout,
		app.logger,
	)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", extractionHandler.ListCategories)
		r.Post("/ai/extract-tasks", extractionHandler.ExtractTasks)

		r.Get("/tasks", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Handle("/*", web.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
