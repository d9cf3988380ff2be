package usecase

import (
	"home-services/internal/data/repository"
	"home-services/pkg/notify"
	"home-services/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Catalog CatalogService
	Booking BookingService
	Admin   AdminService
}

func NewService(
	repo *repository.Repository,
	tokens *utils.TokenManager,
	images ImageStore,
	notifier notify.Notifier,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	catalog := NewCatalogService(repo, images, log)

	return &Service{
		Auth:    NewAuthService(repo, tokens, log),
		User:    NewUserService(repo.User, log),
		Catalog: catalog,
		Booking: NewBookingService(repo, catalog, notifier, config, log),
		Admin:   NewAdminService(repo, log),
	}
}
