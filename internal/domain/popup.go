package domain

import "time"

// Popup is a timed promotional banner, optionally carrying a discount code.
type Popup struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	DiscountCode    string    `json:"discount_code,omitempty"`
	IsActive        bool      `json:"is_active"`
	DisplayDuration int       `json:"display_duration"` // milliseconds
	CreatedAt       time.Time `json:"created_at"`
}
