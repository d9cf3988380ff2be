package wire

import (
	"home-services/internal/adaptor"
	"home-services/internal/data/repository"
	"home-services/pkg/middleware"
	"home-services/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	r.With(
		middleware.Authenticate(tokens, log),
		middleware.Admin(repo.User, log),
	).Get("/api/admin/stats", adminHandler.GetStats)
}
