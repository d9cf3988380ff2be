package wire

import (
	"home-services/internal/adaptor"
	"home-services/internal/data/entity"
	"home-services/internal/data/repository"
	"home-services/pkg/middleware"
	"home-services/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures account routes with role-based access control
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(
		middleware.Authenticate(tokens, log),
		middleware.RequireRole(repo.User, log, entity.RoleCustomer, entity.RoleProvider, entity.RoleAdmin),
	).Route("/api/user", func(r chi.Router) {
		r.Get("/profile", userHandler.GetProfile)
		r.Get("/bookings", bookingHandler.GetUserBookings) // ?page=1&perPage=20
	})

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.Authenticate(tokens, log),
		middleware.Admin(repo.User, log),
	).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)
		r.Patch("/{id}", userHandler.UpdateUser) // role and blocked flag
	})
}
