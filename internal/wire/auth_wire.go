package wire

import (
	"home-services/internal/adaptor"
	"home-services/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, limiter *middleware.RateLimiter) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(limiter.Handler)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})
}
