package models

import "time"

// NotificationFilter narrows a price-history search by the tracking entry's
// notify flag.
type NotificationFilter string

const (
	NotificationsAll      NotificationFilter = "all"
	NotificationsEnabled  NotificationFilter = "enabled"
	NotificationsDisabled NotificationFilter = "disabled"
)

// PriceHistoryEntry is one row of a price-history search: a recorded price
// point joined with the product and the tracking user.
type PriceHistoryEntry struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"product_id"`
	ProductName   string    `json:"name"`
	UserEmail     string    `json:"user_email,omitempty"`
	Price         float64   `json:"price"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source,omitempty"`
	Notifications bool      `json:"notifications"`
}

// PriceHistoryQuery holds the search parameters. Zero values mean "not set".
// UserFilter is honored by the backend for admin callers only.
type PriceHistoryQuery struct {
	ProductID     int64
	Name          string
	Notifications NotificationFilter
	UserFilter    int64
}
