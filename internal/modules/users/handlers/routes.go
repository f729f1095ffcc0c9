package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// RegisterRoutes registers auth and user routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Use(httprate.Limit(
			h.authRateLimit,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(h.rateLimited),
		))
		r.Post("/signup", h.HandleSignup)
		r.Post("/login", h.HandleLogin)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.HandleGetUsers)
		r.Get("/{id}", h.HandleGetUser)
		r.Put("/{id}", h.HandleUpdateUser)
		r.Delete("/{id}", h.HandleDeleteUser)
	})
}
