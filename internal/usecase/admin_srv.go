package usecase

import (
	"context"
	"fmt"

	"home-services/internal/data/repository"
	"home-services/internal/dto/response"

	"go.uber.org/zap"
)

type AdminService interface {
	GetStats(ctx context.Context) (*response.StatsResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

// GetStats is computed on every call; bookingsByStatus only lists statuses
// that at least one booking holds.
func (s *adminService) GetStats(ctx context.Context) (*response.StatsResponse, error) {
	services, err := s.repo.Service.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count services: %w", err)
	}

	bookings, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	users, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	byStatus, err := s.repo.Booking.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings by status: %w", err)
	}

	return &response.StatsResponse{
		ServicesCount:    services,
		BookingsCount:    bookings,
		UsersCount:       users,
		BookingsByStatus: byStatus,
	}, nil
}
