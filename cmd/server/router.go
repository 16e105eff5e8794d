package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	webmiddleware "github.com/taskdeck/taskdeck/internal/web/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(webmiddleware.TraceMiddleware(app.logger))
	r.Use(webmiddleware.Recoverer(app.renderer))

	sessionMiddleware := webmiddleware.NewSessionMiddleware(app.sessionService)
	r.Use(sessionMiddleware.Load)

	// Public routes
	r.Get("/", app.authHandler.Landing)
	r.Get("/register", app.authHandler.RegisterPage)
	r.Post("/register", app.authHandler.Register)
	r.Get("/login", app.authHandler.LoginPage)
	r.Post("/login", app.authHandler.Login)
	r.Get("/logout", app.authHandler.Logout)

	// Routes gated on an active session
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware.RequireSession("Please log in to access the dashboard"))

		r.Get("/dashboard", app.taskHandler.Dashboard)
	})

	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware.RequireSession("Please log in first"))

		r.Post("/add", app.taskHandler.AddTask)
		r.Post("/update/{taskID}", app.taskHandler.UpdateTaskStatus)
		r.Post("/delete/{taskID}", app.taskHandler.DeleteTask)
		r.Post("/add_category", app.categoryHandler.AddCategory)
		r.Post("/delete_category/{categoryID}", app.categoryHandler.DeleteCategory)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	r.NotFound(app.renderer.RenderNotFound)

	return r
}
