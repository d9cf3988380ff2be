package repository

import (
	"context"
	"errors"
	"fmt"

	"home-services/internal/data/entity"
	"home-services/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ServiceRepository stores the catalog of bookable services.
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id string) (*entity.Service, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Service, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*entity.Service, error)
	FindAll(ctx context.Context, category string) ([]*entity.Service, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id string) error
	ImageURLs(ctx context.Context) ([]string, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, slug, title, category, description, base_price, duration_mins, image_url, created_by, created_at, updated_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var service entity.Service
	err := row.Scan(
		&service.ID,
		&service.Slug,
		&service.Title,
		&service.Category,
		&service.Description,
		&service.BasePrice,
		&service.DurationMins,
		&service.ImageURL,
		&service.CreatedBy,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		service.ID,
		service.Slug,
		service.Title,
		service.Category,
		service.Description,
		service.BasePrice,
		service.DurationMins,
		service.ImageURL,
		service.CreatedBy,
		service.CreatedAt,
		service.UpdatedAt,
	)

	if err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrDuplicate) {
			r.log.Error("Failed to create service",
				zap.Error(err),
				zap.String("title", service.Title),
			)
		}
		return fmt.Errorf("create service %s: %w", service.Title, err)
	}

	return nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id string) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	service, err := scanService(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID", zap.Error(err), zap.String("service_id", id))
		return nil, fmt.Errorf("find service by ID %s: %w", id, err)
	}

	return service, nil
}

func (r *serviceRepository) FindBySlug(ctx context.Context, slug string) (*entity.Service, error) {
	if slug == "" {
		return nil, nil
	}

	query := `SELECT ` + serviceColumns + ` FROM services WHERE slug = $1`

	service, err := scanService(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("find service by slug %s: %w", slug, err)
	}

	return service, nil
}

func (r *serviceRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*entity.Service, error) {
	services := make(map[string]*entity.Service, len(ids))
	if len(ids) == 0 {
		return services, nil
	}

	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find services by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find services by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services[service.ID] = service
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service rows: %w", err)
	}

	return services, nil
}

// FindAll lists the catalog newest first, optionally narrowed to one category.
func (r *serviceRepository) FindAll(ctx context.Context, category string) ([]*entity.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE ($1 = '' OR category = $1)
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		r.log.Error("Failed to list services", zap.Error(err), zap.String("category", category))
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service rows: %w", err)
	}

	return services, nil
}

func (r *serviceRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&count); err != nil {
		r.log.Error("Failed to count services", zap.Error(err))
		return 0, fmt.Errorf("count services: %w", err)
	}
	return count, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	query := `
		UPDATE services
		SET slug = $2, title = $3, category = $4, description = $5, base_price = $6,
		    duration_mins = $7, image_url = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		service.ID,
		service.Slug,
		service.Title,
		service.Category,
		service.Description,
		service.BasePrice,
		service.DurationMins,
		service.ImageURL,
		service.UpdatedAt,
	)

	if err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrDuplicate) {
			r.log.Error("Failed to update service", zap.Error(err), zap.String("service_id", service.ID))
		}
		return fmt.Errorf("update service %s: %w", service.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", service.ID)
	}

	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrReferenced) {
			r.log.Error("Failed to delete service", zap.Error(err), zap.String("service_id", id))
		}
		return fmt.Errorf("delete service %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", id)
	}

	r.log.Info("Service deleted", zap.String("service_id", id))
	return nil
}

// ImageURLs returns every non-empty image reference in the catalog.
func (r *serviceRepository) ImageURLs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT image_url FROM services WHERE image_url <> ''`)
	if err != nil {
		r.log.Error("Failed to list image urls", zap.Error(err))
		return nil, fmt.Errorf("list image urls: %w", err)
	}
	defer rows.Close()

	urls, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect image urls: %w", err)
	}
	return urls, nil
}
