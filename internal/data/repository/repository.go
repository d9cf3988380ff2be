package repository

import (
	"home-services/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Service ServiceRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Service: NewServiceRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
