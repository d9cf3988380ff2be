package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"home-services/internal/data/entity"
	"home-services/internal/data/repository"
	"home-services/internal/dto/request"
	"home-services/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func flex(s string) *request.FlexString {
	f := request.FlexString(s)
	return &f
}

func TestResolveServiceRef(t *testing.T) {
	repo := repository.NewMemoryRepository()
	gas := seedService(t, repo, "gas1", "AC gas refill", 2499)
	catalog := NewCatalogService(repo, nil, zap.NewNop())
	ctx := context.Background()

	t.Run("by id", func(t *testing.T) {
		got, err := catalog.ResolveServiceRef(ctx, gas.ID)
		require.NoError(t, err)
		assert.Equal(t, gas.ID, got.ID)
	})

	t.Run("by id in upper case", func(t *testing.T) {
		got, err := catalog.ResolveServiceRef(ctx, strings.ToUpper(gas.ID))
		require.NoError(t, err)
		assert.Equal(t, gas.ID, got.ID)
	})

	t.Run("by slug", func(t *testing.T) {
		got, err := catalog.ResolveServiceRef(ctx, "gas1")
		require.NoError(t, err)
		assert.Equal(t, gas.ID, got.ID)
	})

	t.Run("unknown", func(t *testing.T) {
		for _, ref := range []string{"", "  ", "nope", utils.NewObjectID(), "65f1a2b3c4d5e6f708192a3"} {
			_, err := catalog.ResolveServiceRef(ctx, ref)
			assert.ErrorIs(t, err, ErrNotFound, ref)
		}
	})
}

func TestCreateService_Normalization(t *testing.T) {
	repo := repository.NewMemoryRepository()
	catalog := NewCatalogService(repo, nil, zap.NewNop())
	ctx := context.Background()
	admin := utils.NewObjectID()

	resp, err := catalog.CreateService(ctx, admin, &request.ServiceRequest{
		Title:        strPtr("  Deep Home Cleaning "),
		Price:        flex("1999"),
		DurationMins: flex("240"),
		Image:        strPtr("https://cdn.example.com/clean.png"),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Deep Home Cleaning", resp.Title)
	assert.Equal(t, "deep-home-cleaning", resp.Slug)
	assert.Equal(t, entity.DefaultCategory, resp.Category)
	assert.Equal(t, 1999.0, resp.BasePrice)
	require.NotNil(t, resp.DurationMins)
	assert.Equal(t, 240, *resp.DurationMins)
	assert.Equal(t, "https://cdn.example.com/clean.png", resp.ImageURL)

	// public lookup by the generated slug
	got, err := catalog.GetService(ctx, "deep-home-cleaning")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)
}

func TestCreateService_Rejects(t *testing.T) {
	repo := repository.NewMemoryRepository()
	seedService(t, repo, "gas1", "AC gas refill", 2499)
	catalog := NewCatalogService(repo, nil, zap.NewNop())
	ctx := context.Background()

	_, err := catalog.CreateService(ctx, "", &request.ServiceRequest{}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = catalog.CreateService(ctx, "", &request.ServiceRequest{Title: strPtr("x"), BasePrice: flex("-5")}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = catalog.CreateService(ctx, "", &request.ServiceRequest{Title: strPtr("x"), DurationMins: flex("soon")}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = catalog.CreateService(ctx, "", &request.ServiceRequest{Title: strPtr("x"), Slug: strPtr(utils.NewObjectID())}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = catalog.CreateService(ctx, "", &request.ServiceRequest{Title: strPtr("Gas"), Slug: strPtr("gas1")}, nil)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = catalog.CreateService(ctx, "", &request.ServiceRequest{Title: strPtr("x")}, &Upload{})
	assert.ErrorIs(t, err, ErrValidation, "uploads need an image store")
}

func TestUpdateService(t *testing.T) {
	repo := repository.NewMemoryRepository()
	gas := seedService(t, repo, "gas1", "AC gas refill", 2499)
	catalog := NewCatalogService(repo, nil, zap.NewNop())
	ctx := context.Background()

	resp, err := catalog.UpdateService(ctx, gas.ID, &request.ServiceRequest{
		Title:     strPtr("AC gas top-up"),
		BasePrice: flex("2599"),
		Category:  strPtr(""),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "AC gas top-up", resp.Title)
	assert.Equal(t, "gas1", resp.Slug, "existing slug stays stable")
	assert.Equal(t, 2599.0, resp.BasePrice)
	assert.Equal(t, "AC", resp.Category)

	_, err = catalog.UpdateService(ctx, utils.NewObjectID(), &request.ServiceRequest{}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteService(t *testing.T) {
	repo := repository.NewMemoryRepository()
	gas := seedService(t, repo, "gas1", "AC gas refill", 2499)
	el := seedService(t, repo, "el1", "Electrical repair", 499)
	catalog := NewCatalogService(repo, nil, zap.NewNop())
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Booking.Create(ctx, &entity.Booking{
		Base:      entity.Base{ID: utils.NewObjectID(), CreatedAt: now, UpdatedAt: now},
		ServiceID: gas.ID,
		Status:    entity.BookingStatusPending,
		Guest:     &entity.Guest{Name: "g", Email: "g@example.com"},
	}))

	assert.ErrorIs(t, catalog.DeleteService(ctx, gas.ID), ErrConflict)
	assert.NoError(t, catalog.DeleteService(ctx, el.ID))
	assert.ErrorIs(t, catalog.DeleteService(ctx, el.ID), ErrNotFound)
}

func TestGetServices_Category(t *testing.T) {
	repo := repository.NewMemoryRepository()
	seedService(t, repo, "gas1", "AC gas refill", 2499)
	catalog := NewCatalogService(repo, nil, zap.NewNop())
	ctx := context.Background()

	all, err := catalog.GetServices(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	none, err := catalog.GetServices(ctx, "Plumbing")
	require.NoError(t, err)
	assert.Empty(t, none)
}
