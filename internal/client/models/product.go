package models

import "time"

// Product is a tracked catalog entry together with the caller's tracking
// settings (notes, thresholds, notify). The per-user fields are empty when an
// admin reads a product they do not track themselves.
//
// The backend serializes product fields in camelCase; notifications and price
// history use snake_case. Both are kept as-is rather than normalized.
type Product struct {
	ID             int64     `json:"id"`
	URL            string    `json:"url"`
	Name           string    `json:"name"`
	CurrentPrice   float64   `json:"currentPrice"`
	LowestPrice    *float64  `json:"lowestPrice"`
	HighestPrice   *float64  `json:"highestPrice"`
	Notes          string    `json:"notes,omitempty"`
	LowerThreshold *float64  `json:"lowerThreshold,omitempty"`
	UpperThreshold *float64  `json:"upperThreshold,omitempty"`
	Notify         bool      `json:"notify"`
	Source         string    `json:"source,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	LastChecked    time.Time `json:"lastChecked"`
}

// ProductRef identifies the product to start tracking.
type ProductRef struct {
	URL    string `json:"url"`
	Source string `json:"source,omitempty"`
}

// TrackRequest is the request body for tracking a product: the product
// reference plus the caller's tracking settings.
type TrackRequest struct {
	Product        ProductRef `json:"product"`
	Notes          string     `json:"notes,omitempty"`
	Notify         bool       `json:"notify"`
	LowerThreshold *float64   `json:"lower_threshold,omitempty"`
	UpperThreshold *float64   `json:"upper_threshold,omitempty"`
}
