package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public site surface, the login flow, and the
// session-guarded admin surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, session sessionMiddleware) {
	// Public site endpoints
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/content", handlers.contentHandler.getContent())
		r.Get("/projects", handlers.contentHandler.getAllProjects())
		r.Get("/projects/{projectID}", handlers.contentHandler.getProject())
		r.Get("/profile", handlers.contentHandler.getProfile())
		r.Get("/stats", handlers.contentHandler.getStats())
		r.Get("/faq", handlers.contentHandler.getFAQ())
		r.Get("/social-links", handlers.contentHandler.getSocialLinks())
		r.Get("/cv", handlers.contentHandler.getCV())
		r.Get("/popup", handlers.contentHandler.getPopup())

		// Login flow
		r.Get("/auth/captcha", handlers.authHandler.getCaptcha())
		r.Post("/auth/login", handlers.authHandler.login())
		r.Post("/auth/logout", handlers.authHandler.logout())
		r.Get("/auth/session", handlers.authHandler.getSession())
	})

	// Admin endpoints, session required
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(session.require)

		r.Get("/content/{collection}", handlers.adminHandler.getCollection())
		r.Put("/content/{collection}", handlers.adminHandler.setCollection())
		r.Delete("/content/{collection}/{rowID}", handlers.adminHandler.deleteRow())
		r.Post("/upload/{bucket}", handlers.adminHandler.uploadFile())
	})
}
