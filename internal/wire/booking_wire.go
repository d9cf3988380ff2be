package wire

import (
	"home-services/internal/adaptor"
	"home-services/internal/data/repository"
	"home-services/pkg/middleware"
	"home-services/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	limiter *middleware.RateLimiter,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/bookings - guests may book without a token
	r.With(
		middleware.OptionalAuth(tokens, log),
		limiter.Handler,
	).Post("/api/bookings", bookingHandler.CreateBooking)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/", bookingHandler.GetAllBookings)
		r.Patch("/{id}/status", bookingHandler.UpdateStatus)
	})
}
