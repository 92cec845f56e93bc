// Package services contains application services for the pricewatch client.
// This file defines the catalog service: tracked products and price-history
// search scoped to the current principal.
package services

import (
	"context"
	"fmt"

	"github.com/mpetrovs/pricewatch/internal/client/api"
	"github.com/mpetrovs/pricewatch/internal/client/models"
	"github.com/mpetrovs/pricewatch/internal/client/session"
)

// ErrNotAuthenticated is returned when a catalog operation runs without a
// signed-in principal.
var ErrNotAuthenticated = fmt.Errorf("not authenticated")

// CatalogService exposes product and price-history operations for the CLI.
//
// Contract:
//   - Products: the caller's tracked products; admins get the whole catalog.
//   - Product: one product with the caller's tracking settings.
//   - Track: start tracking a product by URL.
//   - SearchHistory: price-history search; the user filter is stripped for
//     non-admin callers since the backend rejects it anyway.
//
// All methods must honor context cancellation/timeouts.
type CatalogService interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id int64) (*models.Product, error)
	Track(ctx context.Context, req models.TrackRequest) (*models.Product, error)
	SearchHistory(ctx context.Context, q models.PriceHistoryQuery) ([]models.PriceHistoryEntry, error)
}

// catalogService is the concrete CatalogService backed by the remote Client,
// reading the principal from the session Manager.
type catalogService struct {
	client  api.Client
	session *session.Manager
}

// NewCatalogService constructs a CatalogService bound to the given API client
// and session manager.
func NewCatalogService(client api.Client, sm *session.Manager) CatalogService {
	return &catalogService{client: client, session: sm}
}

func (s *catalogService) principal() (*models.User, error) {
	st := s.session.State()
	if st.User == nil {
		return nil, ErrNotAuthenticated
	}
	return st.User, nil
}

// Products lists the current user's tracked products. An admin gets every
// product in the catalog (user id 0 means "all" on the backend).
func (s *catalogService) Products(ctx context.Context) ([]models.Product, error) {
	u, err := s.principal()
	if err != nil {
		return nil, err
	}
	id := u.ID
	if u.Admin {
		id = 0
	}
	return s.client.UserProducts(ctx, id)
}

func (s *catalogService) Product(ctx context.Context, id int64) (*models.Product, error) {
	if _, err := s.principal(); err != nil {
		return nil, err
	}
	return s.client.GetProduct(ctx, id)
}

func (s *catalogService) Track(ctx context.Context, req models.TrackRequest) (*models.Product, error) {
	if _, err := s.principal(); err != nil {
		return nil, err
	}
	return s.client.TrackProduct(ctx, req)
}

func (s *catalogService) SearchHistory(ctx context.Context, q models.PriceHistoryQuery) ([]models.PriceHistoryEntry, error) {
	u, err := s.principal()
	if err != nil {
		return nil, err
	}
	if !u.Admin {
		q.UserFilter = 0
	}
	return s.client.SearchPriceHistory(ctx, q)
}
