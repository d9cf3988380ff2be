package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"home-services/internal/data/entity"
	"home-services/internal/data/repository"
	"home-services/internal/dto/request"
	"home-services/internal/dto/response"
	"home-services/pkg/metrics"
	"home-services/pkg/notify"
	"home-services/pkg/utils"

	"go.uber.org/zap"
)

// ServiceResolver finds a catalog entry from an id or a slug.
type ServiceResolver interface {
	ResolveServiceRef(ctx context.Context, identifier string) (*entity.Service, error)
}

type BookingService interface {
	// CreateBooking books a service for the authenticated user (userID) or,
	// when userID is empty, for the customer or guest named in the body.
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Admin
	GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	catalog  ServiceResolver
	notifier notify.Notifier
	config   *utils.Config
	log      *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	catalog ServiceResolver,
	notifier notify.Notifier,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		config:   config,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// 1. scheduledAt wins over the legacy date key
	dateValue := req.NormalizedDate()
	serviceRef := strings.TrimSpace(req.Service)

	// 2. Required fields
	if serviceRef == "" || dateValue == "" {
		return nil, invalid("missing required field: service and scheduledAt are required")
	}

	// 3. The token identity cannot be overridden by the body
	customerID := strings.TrimSpace(req.Customer)
	if userID != "" {
		customerID = userID
	}

	// 4. Someone has to own the booking
	if customerID == "" && !req.Guest.Complete() {
		return nil, invalid("missing customer or guest")
	}

	// 5. Resolve the service by id or slug
	service, err := s.catalog.ResolveServiceRef(ctx, serviceRef)
	if err != nil {
		return nil, err
	}

	// 6. Parse the slot
	scheduledAt, err := utils.ParseDateTime(dateValue, s.config.App.Timezone)
	if err != nil {
		s.log.Debug("Unparseable booking date", zap.String("date", dateValue), zap.Error(err))
		return nil, invalid("invalid date")
	}

	var customer *entity.User
	if customerID != "" {
		customer, err = s.findCustomer(ctx, customerID)
		if err != nil {
			return nil, err
		}
	}

	// 7-8. Snapshot the price and store as pending
	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.NewObjectID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ServiceID:   service.ID,
		ScheduledAt: scheduledAt,
		Status:      entity.BookingStatusPending,
		Price:       service.BasePrice,
		Address:     strings.TrimSpace(req.Address),
		Notes:       strings.TrimSpace(req.Notes),
	}

	kind := "guest"
	if customer != nil {
		kind = "customer"
		booking.CustomerID = &customer.ID
	} else {
		booking.Guest = &entity.Guest{
			Name:  strings.TrimSpace(req.Guest.Name),
			Email: strings.ToLower(strings.TrimSpace(req.Guest.Email)),
			Phone: req.Guest.Phone,
		}
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("service_id", service.ID),
			zap.String("kind", kind),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.RecordBookingCreated(kind)
	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("service_id", service.ID),
		zap.String("kind", kind),
		zap.Float64("price", booking.Price),
		zap.Time("scheduled_at", booking.ScheduledAt),
	)

	// 9. Confirmation is best effort
	s.recordConfirmation(booking.ID, s.attemptConfirmation(ctx, booking, service, customer))

	// 10. Respond with references resolved
	resp := response.BookingToResponse(booking, service, customer)
	return &resp, nil
}

// findCustomer loads the account a booking is attributed to.
func (s *bookingService) findCustomer(ctx context.Context, customerID string) (*entity.User, error) {
	if !utils.IsObjectID(customerID) {
		return nil, notFound("customer not found")
	}

	customer, err := s.repo.User.FindByID(ctx, utils.NormalizeObjectID(customerID))
	if err != nil {
		return nil, fmt.Errorf("find customer %s: %w", customerID, err)
	}
	if customer == nil {
		return nil, notFound("customer not found")
	}
	if customer.Blocked {
		return nil, forbidden("Account is blocked")
	}
	return customer, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = req.Limit()

	bookings, err := s.repo.Booking.FindByCustomerID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByCustomerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	data, err := s.resolveAll(ctx, bookings)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = req.Limit()

	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	data, err := s.resolveAll(ctx, bookings)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

// UpdateStatus writes any status of the closed set regardless of the current one.
func (s *bookingService) UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	status, ok := entity.ParseBookingStatus(req.Status)
	if !ok {
		return nil, &ValidationError{
			Message: "invalid status",
			Fields: map[string]string{
				"status": "Must be one of: pending, confirmed, in_progress, completed, cancelled",
			},
		}
	}

	if !utils.IsObjectID(bookingID) {
		return nil, notFound("booking not found")
	}

	bookingID = utils.NormalizeObjectID(bookingID)
	current, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if current == nil {
		return nil, notFound("booking not found")
	}

	booking, err := s.repo.Booking.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if booking == nil {
		// deleted between the read and the write
		return nil, notFound("booking not found")
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", booking.ID),
		zap.String("from", string(current.Status)),
		zap.String("status", string(status)),
	)

	resolved, err := s.resolveAll(ctx, []*entity.Booking{booking})
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

// resolveAll loads the services and customers of a page of bookings in two queries.
func (s *bookingService) resolveAll(ctx context.Context, bookings []*entity.Booking) ([]response.BookingResponse, error) {
	var serviceIDs, customerIDs []string
	for _, b := range bookings {
		if !slices.Contains(serviceIDs, b.ServiceID) {
			serviceIDs = append(serviceIDs, b.ServiceID)
		}
		if b.CustomerID != nil && !slices.Contains(customerIDs, *b.CustomerID) {
			customerIDs = append(customerIDs, *b.CustomerID)
		}
	}

	services, err := s.repo.Service.FindByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve booking services: %w", err)
	}
	customers, err := s.repo.User.FindByIDs(ctx, customerIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve booking customers: %w", err)
	}

	result := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		var customer *entity.User
		if b.CustomerID != nil {
			customer = customers[*b.CustomerID]
		}
		result[i] = response.BookingToResponse(b, services[b.ServiceID], customer)
	}
	return result, nil
}
