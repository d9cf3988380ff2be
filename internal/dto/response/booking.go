package response

import (
	"time"

	"home-services/internal/data/entity"
)

// BookingService is the part of a service shown next to a booking.
type BookingService struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	BasePrice float64 `json:"basePrice"`
}

// BookingCustomer is the part of an account shown next to a booking.
type BookingCustomer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type GuestResponse struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// BookingResponse resolves service and customer. Either may be null when
// the referenced document no longer exists.
type BookingResponse struct {
	ID          string               `json:"id"`
	Service     *BookingService      `json:"service"`
	Customer    *BookingCustomer     `json:"customer"`
	Guest       *GuestResponse       `json:"guest"`
	ScheduledAt time.Time            `json:"scheduledAt"`
	Status      entity.BookingStatus `json:"status"`
	Price       float64              `json:"price"`
	Address     string               `json:"address"`
	Notes       string               `json:"notes"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func BookingToResponse(b *entity.Booking, service *entity.Service, customer *entity.User) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		ScheduledAt: b.ScheduledAt,
		Status:      b.Status,
		Price:       b.Price,
		Address:     b.Address,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if service != nil {
		resp.Service = &BookingService{ID: service.ID, Title: service.Title, BasePrice: service.BasePrice}
	}
	if customer != nil {
		resp.Customer = &BookingCustomer{ID: customer.ID, Name: customer.Name, Email: customer.Email}
	}
	if b.Guest != nil {
		resp.Guest = &GuestResponse{Name: b.Guest.Name, Email: b.Guest.Email, Phone: b.Guest.Phone}
	}
	return resp
}
