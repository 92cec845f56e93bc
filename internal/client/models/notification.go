package models

import "time"

// Notification is a user-to-user message created server-side. IsRead is the
// only field the recipient may change; CreatedAt is immutable.
type Notification struct {
	ID         int64     `json:"id"`
	FromUserID int64     `json:"from_user_id"`
	UserID     int64     `json:"user_id"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationCreate is the request body for sending a notification.
type NotificationCreate struct {
	FromUserID int64  `json:"from_user_id"`
	UserID     int64  `json:"user_id"`
	Message    string `json:"message"`
}
