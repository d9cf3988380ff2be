package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"home-services/internal/data/entity"
	"home-services/internal/data/repository"
	"home-services/internal/dto/request"
	"home-services/internal/dto/response"
	"home-services/pkg/storage"
	"home-services/pkg/utils"

	"go.uber.org/zap"
)

// ImageStore persists uploaded service images.
type ImageStore interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
	Remove(url string) error
}

// Upload is an image file sent with a service form.
type Upload struct {
	File   multipart.File
	Header *multipart.FileHeader
}

type CatalogService interface {
	// ResolveServiceRef treats a 24 char hex identifier as a primary id and
	// anything else as a slug. Every caller that accepts either goes through here.
	ResolveServiceRef(ctx context.Context, identifier string) (*entity.Service, error)

	// Public
	GetServices(ctx context.Context, category string) ([]response.ServiceResponse, error)
	GetService(ctx context.Context, idOrSlug string) (*response.ServiceResponse, error)

	// Admin
	GetServiceByID(ctx context.Context, id string) (*response.ServiceResponse, error)
	CreateService(ctx context.Context, createdBy string, req *request.ServiceRequest, upload *Upload) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, id string, req *request.ServiceRequest, upload *Upload) (*response.ServiceResponse, error)
	DeleteService(ctx context.Context, id string) error
}

type catalogService struct {
	repo   *repository.Repository
	images ImageStore
	log    *zap.Logger
}

func NewCatalogService(repo *repository.Repository, images ImageStore, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		images: images,
		log:    log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ResolveServiceRef(ctx context.Context, identifier string) (*entity.Service, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, notFound("service not found")
	}

	var (
		service *entity.Service
		err     error
	)
	if utils.IsObjectID(identifier) {
		service, err = s.repo.Service.FindByID(ctx, utils.NormalizeObjectID(identifier))
	} else {
		service, err = s.repo.Service.FindBySlug(ctx, identifier)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve service %s: %w", identifier, err)
	}
	if service == nil {
		return nil, notFound("service not found")
	}

	return service, nil
}

func (s *catalogService) GetServices(ctx context.Context, category string) ([]response.ServiceResponse, error) {
	services, err := s.repo.Service.FindAll(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	result := make([]response.ServiceResponse, len(services))
	for i, service := range services {
		result[i] = response.ServiceToResponse(service)
	}
	return result, nil
}

func (s *catalogService) GetService(ctx context.Context, idOrSlug string) (*response.ServiceResponse, error) {
	service, err := s.ResolveServiceRef(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) GetServiceByID(ctx context.Context, id string) (*response.ServiceResponse, error) {
	service, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) findByID(ctx context.Context, id string) (*entity.Service, error) {
	if !utils.IsObjectID(id) {
		return nil, notFound("service not found")
	}

	service, err := s.repo.Service.FindByID(ctx, utils.NormalizeObjectID(id))
	if err != nil {
		return nil, fmt.Errorf("find service %s: %w", id, err)
	}
	if service == nil {
		return nil, notFound("service not found")
	}
	return service, nil
}

func (s *catalogService) CreateService(ctx context.Context, createdBy string, req *request.ServiceRequest, upload *Upload) (*response.ServiceResponse, error) {
	title := strings.TrimSpace(utils.Deref(req.Title))
	if title == "" {
		return nil, &ValidationError{Message: "validation failed", Fields: map[string]string{"title": "This field is required"}}
	}

	slug := utils.Slugify(utils.Deref(req.Slug))
	if slug == "" {
		slug = utils.Slugify(title)
	}
	if err := checkSlug(slug); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(utils.Deref(req.Category))
	if category == "" {
		category = entity.DefaultCategory
	}

	price, err := utils.ParsePrice(req.PriceValue())
	if err != nil {
		return nil, invalid("%s", err.Error())
	}

	var duration *int
	if req.DurationMins != nil {
		if duration, err = parseDuration(string(*req.DurationMins)); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	service := &entity.Service{
		Base: entity.Base{
			ID:        utils.NewObjectID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Slug:         slug,
		Title:        title,
		Category:     category,
		Description:  strings.TrimSpace(utils.Deref(req.Description)),
		BasePrice:    price,
		DurationMins: duration,
		ImageURL:     strings.TrimSpace(utils.Deref(req.ImageValue())),
	}
	if utils.IsObjectID(createdBy) {
		service.CreatedBy = &createdBy
	}

	if upload != nil {
		url, err := s.saveImage(upload)
		if err != nil {
			return nil, err
		}
		service.ImageURL = url
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		if upload != nil {
			s.removeImage(service.ImageURL)
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("slug %q is already in use", slug)
		}
		s.log.Error("Failed to create service", zap.Error(err), zap.String("title", title))
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID),
		zap.String("slug", service.Slug),
		zap.Float64("base_price", service.BasePrice),
	)

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) UpdateService(ctx context.Context, id string, req *request.ServiceRequest, upload *Upload) (*response.ServiceResponse, error) {
	service, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(utils.Deref(req.Title)); title != "" {
		service.Title = title
		// an existing slug is a published url, keep it stable
		if service.Slug == "" {
			service.Slug = utils.Slugify(title)
		}
	}

	if slug := utils.Slugify(utils.Deref(req.Slug)); slug != "" {
		service.Slug = slug
	}
	if err := checkSlug(service.Slug); err != nil {
		return nil, err
	}

	if category := strings.TrimSpace(utils.Deref(req.Category)); category != "" {
		service.Category = category
	}

	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}

	if raw := strings.TrimSpace(req.PriceValue()); raw != "" {
		price, err := utils.ParsePrice(raw)
		if err != nil {
			return nil, invalid("%s", err.Error())
		}
		service.BasePrice = price
	}

	if req.DurationMins != nil {
		duration, err := parseDuration(string(*req.DurationMins))
		if err != nil {
			return nil, err
		}
		service.DurationMins = duration
	}

	oldImage := service.ImageURL
	if upload != nil {
		url, err := s.saveImage(upload)
		if err != nil {
			return nil, err
		}
		service.ImageURL = url
	} else if image := req.ImageValue(); image != nil {
		service.ImageURL = strings.TrimSpace(*image)
	}

	service.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		if upload != nil {
			s.removeImage(service.ImageURL)
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("slug %q is already in use", service.Slug)
		}
		s.log.Error("Failed to update service", zap.Error(err), zap.String("service_id", id))
		return nil, fmt.Errorf("update service: %w", err)
	}

	if upload != nil && oldImage != "" && oldImage != service.ImageURL {
		s.removeImage(oldImage)
	}

	s.log.Info("Service updated", zap.String("service_id", service.ID))

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) DeleteService(ctx context.Context, id string) error {
	service, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Service.Delete(ctx, service.ID); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return conflict("service has bookings and cannot be deleted")
		}
		s.log.Error("Failed to delete service", zap.Error(err), zap.String("service_id", id))
		return fmt.Errorf("delete service: %w", err)
	}

	if service.ImageURL != "" {
		s.removeImage(service.ImageURL)
	}

	s.log.Info("Service deleted", zap.String("service_id", service.ID))
	return nil
}

func (s *catalogService) saveImage(upload *Upload) (string, error) {
	if s.images == nil {
		return "", invalid("image uploads are not enabled")
	}

	url, err := s.images.Save(upload.File, upload.Header)
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		return "", invalid("only images are allowed (jpeg, jpg, png, webp, gif)")
	case errors.Is(err, storage.ErrTooLarge):
		return "", invalid("image is too large")
	case err != nil:
		return "", fmt.Errorf("save image: %w", err)
	}
	return url, nil
}

// removeImage is best effort, the upload janitor collects what is left behind.
func (s *catalogService) removeImage(url string) {
	if s.images == nil {
		return
	}
	if err := s.images.Remove(url); err != nil {
		s.log.Warn("Failed to remove service image", zap.Error(err), zap.String("image_url", url))
	}
}

// checkSlug rejects slugs that the resolver would read as an id.
func checkSlug(slug string) error {
	if utils.IsObjectID(slug) {
		return invalid("slug must not look like an id")
	}
	return nil
}

func parseDuration(raw string) (*int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	minutes, err := strconv.Atoi(value)
	if err != nil || minutes < 0 {
		return nil, invalid("invalid durationMins %q", value)
	}
	return &minutes, nil
}
