package entity

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// ParseBookingStatus maps user input onto the closed status set.
// "scheduled" is the admin dashboard's name for confirmed.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case "scheduled":
		return BookingStatusConfirmed, true
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return status, true
	}
	return "", false
}

// Guest identifies a booking that is not tied to an account.
type Guest struct {
	Name  string  `db:"guest_name"`
	Email string  `db:"guest_email"`
	Phone *string `db:"guest_phone"`
}

// Booking has exactly one of CustomerID and Guest set.
type Booking struct {
	Base
	CustomerID  *string       `db:"customer_id"`
	Guest       *Guest        `db:"-"`
	ServiceID   string        `db:"service_id"`
	ScheduledAt time.Time     `db:"scheduled_at"`
	Status      BookingStatus `db:"status"`
	Price       float64       `db:"price"`
	Address     string        `db:"address"`
	Notes       string        `db:"notes"`
}
