package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"home-services/internal/data/entity"
	"home-services/internal/data/repository"
	"home-services/pkg/utils"

	"go.uber.org/zap"
)

type seedService struct {
	slug, title, category, description string
	price                              float64
	duration                           int
}

var demoCatalog = []seedService{
	{"lite1", "Light fitting", "Electrical", "Install or replace ceiling and wall lights.", 299, 45},
	{"el1", "Electrical repair", "Electrical", "Diagnose and fix switches, sockets and wiring faults.", 499, 60},
	{"gas1", "AC gas refill", "AC", "Top up refrigerant and check for leaks.", 2499, 120},
	{"ac1", "AC service", "AC", "Filter cleaning, coil wash and cooling check.", 799, 90},
	{"plumb1", "Tap and leak repair", "Plumbing", "Fix dripping taps and minor pipe leaks.", 349, 45},
	{"clean1", "Home deep cleaning", "Cleaning", "Kitchen, bathrooms and floors, top to bottom.", 1999, 240},
}

// Seed inserts the demo catalog and the demo accounts. Records that already
// exist are left untouched, so it is safe to run more than once.
func Seed(ctx context.Context, repo *repository.Repository, config utils.SeedConfig, log *zap.Logger) error {
	log = log.With(zap.String("job", "seed"))

	for _, account := range []struct {
		name, email, password string
		role                  entity.UserRole
	}{
		{"Admin", config.AdminEmail, config.AdminPassword, entity.RoleAdmin},
		{"Demo Customer", config.UserEmail, config.UserPassword, entity.RoleCustomer},
	} {
		if account.email == "" || account.password == "" {
			continue
		}
		created, err := seedUser(ctx, repo, account.name, account.email, account.password, account.role)
		if err != nil {
			return err
		}
		if created {
			log.Info("Seeded account", zap.String("email", account.email), zap.String("role", string(account.role)))
		}
	}

	var added int
	for _, item := range demoCatalog {
		existing, err := repo.Service.FindBySlug(ctx, item.slug)
		if err != nil {
			return fmt.Errorf("look up service %s: %w", item.slug, err)
		}
		if existing != nil {
			continue
		}

		now := time.Now()
		duration := item.duration
		service := &entity.Service{
			Base:         entity.Base{ID: utils.NewObjectID(), CreatedAt: now, UpdatedAt: now},
			Slug:         item.slug,
			Title:        item.title,
			Category:     item.category,
			Description:  item.description,
			BasePrice:    item.price,
			DurationMins: &duration,
		}
		if err := repo.Service.Create(ctx, service); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("seed service %s: %w", item.slug, err)
		}
		added++
	}

	log.Info("Seed finished", zap.Int("services_added", added))
	return nil
}

func seedUser(ctx context.Context, repo *repository.Repository, name, email, password string, role entity.UserRole) (bool, error) {
	existing, err := repo.User.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("look up user %s: %w", email, err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: utils.NewObjectID(), CreatedAt: now, UpdatedAt: now},
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("seed user %s: %w", email, err)
	}
	return true, nil
}
