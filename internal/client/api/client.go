// Package api is the transport layer of the pricewatch client: the Client
// interface describes every backend call the application makes, and
// HTTPClient implements it over the cookie-authenticated REST API.
package api

import (
	"context"

	"github.com/mpetrovs/pricewatch/internal/client/models"
)

// Client is the backend the rest of the client programs against.
//
// The session cookie is a transport concern: implementations attach it to
// every credentialed call, callers never see it. Calls fail with the sentinel
// errors from errors.go:
//   - CurrentUser: ErrUnauthorized when no valid session exists.
//   - Login: ErrInvalidCredentials on a bad login; the backend sets the
//     session cookie as a side effect, the response body carries nothing the
//     caller needs.
//   - Logout: best-effort; callers treat any outcome as success locally.
//   - SetNotificationRead: ErrNotFound for an unknown id, ErrUnauthorized
//     when the caller is not the recipient.
type Client interface {
	Close() error

	CurrentUser(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Register(ctx context.Context, email, password string) error

	ListNotifications(ctx context.Context) ([]models.Notification, error)
	SetNotificationRead(ctx context.Context, id int64, isRead bool) error
	CreateNotification(ctx context.Context, n models.NotificationCreate) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	UserProducts(ctx context.Context, userID int64) ([]models.Product, error)
	TrackProduct(ctx context.Context, req models.TrackRequest) (*models.Product, error)

	SearchPriceHistory(ctx context.Context, q models.PriceHistoryQuery) ([]models.PriceHistoryEntry, error)
}
