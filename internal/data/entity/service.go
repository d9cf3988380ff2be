package entity

// Service is a bookable offering in the catalog. Slug is empty when the
// service has none.
type Service struct {
	Base
	Slug         string  `db:"slug"`
	Title        string  `db:"title"`
	Category     string  `db:"category"`
	Description  string  `db:"description"`
	BasePrice    float64 `db:"base_price"`
	DurationMins *int    `db:"duration_mins"`
	ImageURL     string  `db:"image_url"`
	CreatedBy    *string `db:"created_by"`
}

const DefaultCategory = "general"
