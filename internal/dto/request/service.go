package request

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ServiceRequest is the admin create/update payload. It arrives either as
// JSON or as multipart form fields, so numbers are kept as raw text.
type ServiceRequest struct {
	Title        *string     `json:"title,omitempty"`
	Slug         *string     `json:"slug,omitempty"`
	Category     *string     `json:"category,omitempty"`
	Description  *string     `json:"description,omitempty"`
	BasePrice    *FlexString `json:"basePrice,omitempty"`
	Price        *FlexString `json:"price,omitempty"`
	DurationMins *FlexString `json:"durationMins,omitempty"`
	ImageURL     *string     `json:"imageUrl,omitempty"`
	Image        *string     `json:"image,omitempty"`
}

// PriceValue prefers basePrice and accepts the older price key. Empty when neither is set.
func (r *ServiceRequest) PriceValue() string {
	if r.BasePrice != nil {
		return string(*r.BasePrice)
	}
	if r.Price != nil {
		return string(*r.Price)
	}
	return ""
}

// ImageValue prefers imageUrl and accepts the older image key.
func (r *ServiceRequest) ImageValue() *string {
	if r.ImageURL != nil {
		return r.ImageURL
	}
	return r.Image
}

// FlexString decodes either a JSON string or a JSON number into text.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a number or string, got %s", b)
	}
	*f = FlexString(n.String())
	return nil
}
