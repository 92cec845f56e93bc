package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mpetrovs/pricewatch/internal/client/models"
)

// HTTPClient implements Client against the pricewatch REST API.
//
// The session cookie issued by POST /users/login lives in the client's cookie
// jar and is attached automatically to every subsequent request. No bearer
// tokens are used and nothing is persisted: discarding the client discards
// the session.
type HTTPClient struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
}

// NewHTTPClient builds a client for the given base URL. Every call gets its
// own deadline derived from timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	return &HTTPClient{
		base:    base,
		http:    &http.Client{Jar: jar},
		timeout: timeout,
	}, nil
}

// StatusError reports a non-success HTTP status. It unwraps to the sentinel
// matching the status code, so errors.Is(err, ErrNotFound) etc. keep working
// while callers that need the raw code can use errors.As.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("status %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("status %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Code == http.StatusForbidden:
		return ErrForbidden
	case e.Code == http.StatusNotFound:
		return ErrNotFound
	case e.Code >= http.StatusInternalServerError:
		return ErrServer
	}
	return nil
}

// do performs one JSON round trip. body and out may be nil. Transport-level
// failures are wrapped in ErrUnavailable; non-2xx statuses become a
// *StatusError.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.base.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readDetail extracts the backend's {"detail": "..."} error body, if any.
func readDetail(r io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for a session cookie. The response body is
// intentionally ignored: the authoritative user record comes from a follow-up
// CurrentUser call, never from the login payload.
func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	err := c.do(ctx, http.MethodPost, "/users/login", nil, models.Credentials{Email: email, Password: password}, nil)
	var se *StatusError
	if errors.As(err, &se) && (se.Code == http.StatusBadRequest || se.Code == http.StatusUnauthorized) {
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, se.Detail)
	}
	return err
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/users/logout", nil, nil, nil)
}

// Register creates an account. The backend sets the session cookie on the 201
// response, so a successful registration doubles as a login.
func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/users/create", nil, models.Credentials{Email: email, Password: password}, nil)
}

func (c *HTTPClient) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var list []models.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications/", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) SetNotificationRead(ctx context.Context, id int64, isRead bool) error {
	body := struct {
		NewIsRead bool `json:"new_is_read"`
	}{NewIsRead: isRead}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/notifications/%d/update_read", id), nil, body, nil)
}

func (c *HTTPClient) CreateNotification(ctx context.Context, n models.NotificationCreate) error {
	return c.do(ctx, http.MethodPost, "/notifications/create_notification", nil, n, nil)
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var list []models.Product
	if err := c.do(ctx, http.MethodGet, "/products/", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UserProducts(ctx context.Context, userID int64) ([]models.Product, error) {
	var list []models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/user-products", userID), nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) TrackProduct(ctx context.Context, req models.TrackRequest) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodPost, "/products/create-product", nil, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) SearchPriceHistory(ctx context.Context, q models.PriceHistoryQuery) ([]models.PriceHistoryEntry, error) {
	query := url.Values{}
	if q.ProductID != 0 {
		query.Set("product_id", strconv.FormatInt(q.ProductID, 10))
	}
	if q.Name != "" {
		query.Set("name", q.Name)
	}
	if q.Notifications != "" {
		query.Set("notifications", string(q.Notifications))
	}
	if q.UserFilter != 0 {
		query.Set("user_filter", strconv.FormatInt(q.UserFilter, 10))
	}

	var list []models.PriceHistoryEntry
	if err := c.do(ctx, http.MethodGet, "/price-history/search-price-history", query, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
