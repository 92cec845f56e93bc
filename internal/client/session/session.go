// Package session holds the process-wide authentication state of the
// pricewatch client: who is logged in, whether the startup session check is
// still outstanding, and the current notification list.
//
// A single Manager instance is created at startup and injected into every
// consumer. Consumers read snapshots; only the Manager's own operations
// mutate state.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/mpetrovs/pricewatch/internal/client/api"
	"github.com/mpetrovs/pricewatch/internal/client/models"
	"github.com/mpetrovs/pricewatch/internal/logging"
)

// State is a point-in-time snapshot of the session.
//
// Invariants: Authenticated == (User != nil), and Loading transitions
// true→false exactly once per process, never back.
type State struct {
	Authenticated bool
	User          *models.User
	Loading       bool
	Notifications []models.Notification
}

// Navigator receives the navigate-to-login side effect of an explicit logout.
// Bootstrap failure never navigates; gating unauthenticated access is the
// route guard's job, not the Manager's.
type Navigator interface {
	NavigateToLogin()
}

// Manager is the single source of truth for session state.
type Manager struct {
	client api.Client
	nav    Navigator
	log    logging.Logger

	bootstrapOnce sync.Once

	mu    sync.RWMutex
	state State
}

// NewManager returns a Manager in the initial loading state: not
// authenticated, with the startup session check still outstanding.
func NewManager(client api.Client, nav Navigator, log logging.Logger) *Manager {
	return &Manager{
		client: client,
		nav:    nav,
		log:    log,
		state:  State{Loading: true},
	}
}

// State returns a snapshot. The user and notification list are copies, so
// holders cannot mutate Manager state through them.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := State{
		Authenticated: m.state.Authenticated,
		Loading:       m.state.Loading,
	}
	if m.state.User != nil {
		u := *m.state.User
		s.User = &u
	}
	if m.state.Notifications != nil {
		s.Notifications = append([]models.Notification(nil), m.state.Notifications...)
	}
	return s
}

// setUser installs or clears the principal, keeping Authenticated derived
// from the user's presence. Clearing also drops the notification list.
func (m *Manager) setUser(u *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.User = u
	m.state.Authenticated = u != nil
	if u == nil {
		m.state.Notifications = nil
	}
}

func (m *Manager) finishLoading() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Loading = false
}

// Bootstrap performs the one-time startup session check. If the session
// cookie still identifies a principal, the user is installed and the
// notification list fetched; otherwise the state resolves to unauthenticated.
// Either way Loading drops to false, guaranteed even when the transport
// fails. Repeat calls are no-ops.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.bootstrapOnce.Do(func() {
		defer m.finishLoading()

		u, err := m.client.CurrentUser(ctx)
		if err != nil {
			m.log.Info(ctx, "no active session", "reason", err)
			m.setUser(nil)
			return
		}
		m.setUser(u)
		m.RefreshNotifications(ctx)
	})
}

// Login exchanges credentials for a session and returns the resolved user.
// The login call only establishes the session cookie; the user record comes
// from a follow-up CurrentUser call. On any failure the session is cleared
// client-side, even if the caller was previously authenticated, and the
// error is returned for the caller to surface. The caller decides what to do
// next; Login never navigates.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := m.client.Login(ctx, email, password); err != nil {
		m.setUser(nil)
		return nil, fmt.Errorf("login: %w", err)
	}

	u, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.setUser(nil)
		return nil, fmt.Errorf("login: %w", err)
	}

	m.setUser(u)
	m.RefreshNotifications(ctx)
	return u, nil
}

// Logout invalidates the server session best-effort, unconditionally clears
// local state, and issues the navigate-to-login side effect exactly once.
// A failed logout request is treated the same as a successful one.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.client.Logout(ctx); err != nil {
		m.log.Warn(ctx, "logout request failed", "reason", err)
	}
	m.setUser(nil)
	m.nav.NavigateToLogin()
}

// RefreshNotifications replaces the notification list wholesale with the
// server's current view. It is a no-op when unauthenticated, and failures are
// logged and swallowed: a stale list beats a crash. Concurrent calls are
// safe; whichever response is applied last wins.
func (m *Manager) RefreshNotifications(ctx context.Context) {
	m.mu.RLock()
	authenticated := m.state.Authenticated
	m.mu.RUnlock()
	if !authenticated {
		return
	}

	list, err := m.client.ListNotifications(ctx)
	if err != nil {
		m.log.Warn(ctx, "notification refresh failed", "reason", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// A logout may have landed while the request was in flight.
	if !m.state.Authenticated {
		return
	}
	m.state.Notifications = list
}

// MarkRead marks the notification as read and resynchronizes the list.
func (m *Manager) MarkRead(ctx context.Context, id int64) error {
	return m.setRead(ctx, id, true)
}

// MarkUnread marks the notification as unread and resynchronizes the list.
func (m *Manager) MarkUnread(ctx context.Context, id int64) error {
	return m.setRead(ctx, id, false)
}

// setRead sends the single-field mutation, then refetches the whole list
// rather than patching locally, so concurrent mutations from other devices
// cannot drift the client's view. On failure the list is left untouched and
// the error is returned for the caller to surface.
func (m *Manager) setRead(ctx context.Context, id int64, isRead bool) error {
	if err := m.client.SetNotificationRead(ctx, id, isRead); err != nil {
		m.log.Warn(ctx, "notification update failed", "id", id, "reason", err)
		return fmt.Errorf("update notification %d: %w", id, err)
	}
	m.RefreshNotifications(ctx)
	return nil
}
