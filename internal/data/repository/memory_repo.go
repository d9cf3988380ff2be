package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"home-services/internal/data/entity"
)

// memStore keeps every collection in process memory. Rows are kept in
// insertion order so listings can be returned newest first.
type memStore struct {
	mu       sync.RWMutex
	users    []*entity.User
	services []*entity.Service
	bookings []*entity.Booking
}

// NewMemoryRepository builds repositories backed by process memory. Used for
// local development without Postgres and in tests.
func NewMemoryRepository() *Repository {
	store := &memStore{}
	return &Repository{
		User:    &memUserRepository{store: store},
		Service: &memServiceRepository{store: store},
		Booking: &memBookingRepository{store: store},
	}
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := min(offset+min(limit, len(items)), len(items))
	return items[offset:end]
}

func newestFirst[T any](items []*T) []*T {
	out := slices.Clone(items)
	slices.Reverse(out)
	return out
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func cloneService(s *entity.Service) *entity.Service {
	c := *s
	return &c
}

func cloneBooking(b *entity.Booking) *entity.Booking {
	c := *b
	if b.Guest != nil {
		g := *b.Guest
		c.Guest = &g
	}
	return &c
}

// ==================== USERS ====================

type memUserRepository struct {
	store *memStore
}

func (r *memUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, u := range r.store.users {
		if u.Email == email {
			return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicate)
		}
	}

	stored := cloneUser(user)
	stored.Email = email
	r.store.users = append(r.store.users, stored)
	return nil
}

func (r *memUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range r.store.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make(map[string]*entity.User, len(ids))
	for _, u := range r.store.users {
		if slices.Contains(ids, u.ID) {
			users[u.ID] = cloneUser(u)
		}
	}
	return users, nil
}

func (r *memUserRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var users []*entity.User
	for _, u := range page(newestFirst(r.store.users), limit, offset) {
		users = append(users, cloneUser(u))
	}
	return users, nil
}

func (r *memUserRepository) CountAll(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.users)), nil
}

func (r *memUserRepository) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, u := range r.store.users {
		if u.Email == email && u.ID != user.ID {
			return fmt.Errorf("update user %s: %w", user.ID, ErrDuplicate)
		}
	}
	for i, u := range r.store.users {
		if u.ID == user.ID {
			stored := cloneUser(user)
			stored.Email = email
			r.store.users[i] = stored
			return nil
		}
	}
	return fmt.Errorf("user %s not found", user.ID)
}

// ==================== SERVICES ====================

type memServiceRepository struct {
	store *memStore
}

func (r *memServiceRepository) slugTaken(slug, exceptID string) bool {
	if slug == "" {
		return false
	}
	for _, s := range r.store.services {
		if s.Slug == slug && s.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *memServiceRepository) Create(ctx context.Context, service *entity.Service) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.slugTaken(service.Slug, "") {
		return fmt.Errorf("create service %s: %w", service.Title, ErrDuplicate)
	}
	r.store.services = append(r.store.services, cloneService(service))
	return nil
}

func (r *memServiceRepository) FindByID(ctx context.Context, id string) (*entity.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.services {
		if s.ID == id {
			return cloneService(s), nil
		}
	}
	return nil, nil
}

func (r *memServiceRepository) FindBySlug(ctx context.Context, slug string) (*entity.Service, error) {
	if slug == "" {
		return nil, nil
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.services {
		if s.Slug == slug {
			return cloneService(s), nil
		}
	}
	return nil, nil
}

func (r *memServiceRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*entity.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	services := make(map[string]*entity.Service, len(ids))
	for _, s := range r.store.services {
		if slices.Contains(ids, s.ID) {
			services[s.ID] = cloneService(s)
		}
	}
	return services, nil
}

func (r *memServiceRepository) FindAll(ctx context.Context, category string) ([]*entity.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var services []*entity.Service
	for _, s := range newestFirst(r.store.services) {
		if category == "" || s.Category == category {
			services = append(services, cloneService(s))
		}
	}
	return services, nil
}

func (r *memServiceRepository) CountAll(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.services)), nil
}

func (r *memServiceRepository) Update(ctx context.Context, service *entity.Service) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.slugTaken(service.Slug, service.ID) {
		return fmt.Errorf("update service %s: %w", service.ID, ErrDuplicate)
	}
	for i, s := range r.store.services {
		if s.ID == service.ID {
			r.store.services[i] = cloneService(service)
			return nil
		}
	}
	return fmt.Errorf("service %s not found", service.ID)
}

func (r *memServiceRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, b := range r.store.bookings {
		if b.ServiceID == id {
			return fmt.Errorf("delete service %s: %w", id, ErrReferenced)
		}
	}
	for i, s := range r.store.services {
		if s.ID == id {
			r.store.services = slices.Delete(r.store.services, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("service %s not found", id)
}

func (r *memServiceRepository) ImageURLs(ctx context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var urls []string
	for _, s := range r.store.services {
		if s.ImageURL != "" {
			urls = append(urls, s.ImageURL)
		}
	}
	return urls, nil
}

// ==================== BOOKINGS ====================

type memBookingRepository struct {
	store *memStore
}

func (r *memBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if (booking.CustomerID == nil) == (booking.Guest == nil) {
		return fmt.Errorf("create booking %s: exactly one of customer and guest must be set", booking.ID)
	}
	r.store.bookings = append(r.store.bookings, cloneBooking(booking))
	return nil
}

func (r *memBookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, b := range r.store.bookings {
		if b.ID == id {
			return cloneBooking(b), nil
		}
	}
	return nil, nil
}

func (r *memBookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var bookings []*entity.Booking
	for _, b := range page(newestFirst(r.store.bookings), limit, offset) {
		bookings = append(bookings, cloneBooking(b))
	}
	return bookings, nil
}

func (r *memBookingRepository) CountAll(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.bookings)), nil
}

func (r *memBookingRepository) customerBookings(customerID string) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range newestFirst(r.store.bookings) {
		if b.CustomerID != nil && *b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out
}

func (r *memBookingRepository) FindByCustomerID(ctx context.Context, customerID string, limit, offset int) ([]*entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var bookings []*entity.Booking
	for _, b := range page(r.customerBookings(customerID), limit, offset) {
		bookings = append(bookings, cloneBooking(b))
	}
	return bookings, nil
}

func (r *memBookingRepository) CountByCustomerID(ctx context.Context, customerID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.customerBookings(customerID))), nil
}

func (r *memBookingRepository) UpdateStatus(ctx context.Context, id string, status entity.BookingStatus) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, b := range r.store.bookings {
		if b.ID == id {
			b.Status = status
			b.UpdatedAt = time.Now()
			return cloneBooking(b), nil
		}
	}
	return nil, nil
}

func (r *memBookingRepository) CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[entity.BookingStatus]int64)
	for _, b := range r.store.bookings {
		counts[b.Status]++
	}
	return counts, nil
}
