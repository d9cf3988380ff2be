package request

import "strings"

// CreateBookingRequest is validated by the booking workflow itself, the
// order of its checks decides which error the caller sees.
type CreateBookingRequest struct {
	Service     string        `json:"service"`
	ScheduledAt string        `json:"scheduledAt"`
	Date        string        `json:"date"`
	Address     string        `json:"address"`
	Notes       string        `json:"notes"`
	Guest       *GuestRequest `json:"guest,omitempty"`
	Customer    string        `json:"customer"`
}

type GuestRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// NormalizedDate returns scheduledAt, falling back to the legacy date key.
func (r *CreateBookingRequest) NormalizedDate() string {
	if s := strings.TrimSpace(r.ScheduledAt); s != "" {
		return s
	}
	return strings.TrimSpace(r.Date)
}

// Complete reports whether the guest can be contacted.
func (g *GuestRequest) Complete() bool {
	return g != nil && strings.TrimSpace(g.Name) != "" && strings.TrimSpace(g.Email) != ""
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
