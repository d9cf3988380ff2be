package response

import (
	"time"

	"home-services/internal/data/entity"
)

type ServiceResponse struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug,omitempty"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	BasePrice    float64   `json:"basePrice"`
	DurationMins *int      `json:"durationMins,omitempty"`
	ImageURL     string    `json:"imageUrl"`
	CreatedBy    *string   `json:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ServiceToResponse(s *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:           s.ID,
		Slug:         s.Slug,
		Title:        s.Title,
		Category:     s.Category,
		Description:  s.Description,
		BasePrice:    s.BasePrice,
		DurationMins: s.DurationMins,
		ImageURL:     s.ImageURL,
		CreatedBy:    s.CreatedBy,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
