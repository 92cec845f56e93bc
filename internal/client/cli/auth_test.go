package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrovs/pricewatch/internal/client/api"
	"github.com/mpetrovs/pricewatch/internal/client/config"
	"github.com/mpetrovs/pricewatch/internal/client/models"
	"github.com/mpetrovs/pricewatch/internal/client/services"
	"github.com/mpetrovs/pricewatch/internal/client/session"
	"github.com/mpetrovs/pricewatch/internal/logging"
)

// fakeClient implements api.Client for App tests.
type fakeClient struct {
	mu sync.Mutex

	currentUser    *models.User
	currentUserErr error

	// When set, the next CurrentUser call parks until the channel is closed
	// and then fails with gateErr. Lets a test hold the startup session check
	// in flight.
	currentUserGate chan struct{}
	gateErr         error

	loginErr      error
	loginEmail    string
	loginPassword string

	registerEmail    string
	registerPassword string
	registerErr      error

	userProductsCalls int
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) CurrentUser(context.Context) (*models.User, error) {
	f.mu.Lock()
	gate := f.currentUserGate
	f.currentUserGate = nil
	err := f.currentUserErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
		return nil, f.gateErr
	}
	if err != nil {
		return nil, err
	}
	u := *f.currentUser
	return &u, nil
}

func (f *fakeClient) Login(_ context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginEmail, f.loginPassword = email, password
	return f.loginErr
}

func (f *fakeClient) Logout(context.Context) error { return nil }

func (f *fakeClient) Register(_ context.Context, email, password string) error {
	f.registerEmail, f.registerPassword = email, password
	return f.registerErr
}

func (f *fakeClient) ListNotifications(context.Context) ([]models.Notification, error) {
	return nil, nil
}
func (f *fakeClient) SetNotificationRead(context.Context, int64, bool) error { return nil }
func (f *fakeClient) CreateNotification(context.Context, models.NotificationCreate) error {
	return nil
}
func (f *fakeClient) ListProducts(context.Context) ([]models.Product, error) { return nil, nil }
func (f *fakeClient) GetProduct(context.Context, int64) (*models.Product, error) {
	return nil, nil
}

func (f *fakeClient) UserProducts(context.Context, int64) ([]models.Product, error) {
	f.userProductsCalls++
	return nil, nil
}

func (f *fakeClient) TrackProduct(context.Context, models.TrackRequest) (*models.Product, error) {
	return nil, nil
}
func (f *fakeClient) SearchPriceHistory(context.Context, models.PriceHistoryQuery) ([]models.PriceHistoryEntry, error) {
	return nil, nil
}

func newTestApp(f *fakeClient) *App {
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	cfg := &config.Config{}
	cfg.LoadDefaults()
	a := &App{
		config: cfg,
		log:    log,
		client: f,
		reader: bufio.NewReader(strings.NewReader("")),
	}
	a.session = session.NewManager(f, a, log)
	a.catalog = services.NewCatalogService(f, a.session)
	return a
}

// stubPrompts makes the interactive input helpers return canned credentials
// for the duration of the test.
func stubPrompts(t *testing.T, email, password string) {
	t.Helper()
	origText, origPassword := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return email, nil
	}
	getPassword = func(_ io.Writer) (string, error) { return password, nil }
	t.Cleanup(func() { getSimpleText, getPassword = origText, origPassword })
}

func TestLoginCmd_Success(t *testing.T) {
	f := &fakeClient{
		currentUser:    &models.User{ID: 1, Email: "a@b.com"},
		currentUserErr: api.ErrUnauthorized,
	}
	a := newTestApp(f)

	// Startup check resolves to unauthenticated before the login.
	a.session.Bootstrap(context.Background())
	f.mu.Lock()
	f.currentUserErr = nil
	f.mu.Unlock()
	stubPrompts(t, "a@b.com", "secret12")

	a.loginCmd(context.Background())

	s := a.session.State()
	require.True(t, s.Authenticated)
	assert.Equal(t, "a@b.com", s.User.Email)
	assert.Equal(t, "a@b.com", f.loginEmail)
	assert.Equal(t, "secret12", f.loginPassword)
}

func TestLoginCmd_BadCredentials(t *testing.T) {
	f := &fakeClient{
		currentUserErr: api.ErrUnauthorized,
		loginErr:       api.ErrInvalidCredentials,
	}
	a := newTestApp(f)
	a.session.Bootstrap(context.Background())
	stubPrompts(t, "a@b.com", "wrong")

	a.loginCmd(context.Background())

	assert.False(t, a.session.State().Authenticated)
}

func TestRegisterCmd(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(f)
	stubPrompts(t, "new@b.com", "secret12")

	a.registerCmd(context.Background())

	assert.Equal(t, "new@b.com", f.registerEmail)
	assert.Equal(t, "secret12", f.registerPassword)
	// Registration does not log the session in; that stays with 'login'.
	assert.False(t, a.session.State().Authenticated)
}

func TestLoginCmd_WaitsForStartupCheck(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeClient{
		currentUser:     &models.User{ID: 1, Email: "a@b.com"},
		currentUserGate: gate,
		gateErr:         api.ErrUnauthorized,
	}
	a := newTestApp(f)
	ctx := context.Background()
	stubPrompts(t, "a@b.com", "secret12")

	go a.session.Bootstrap(ctx)

	done := make(chan struct{})
	go func() {
		a.loginCmd(ctx)
		close(done)
	}()

	// While the startup check is parked in flight, no login call may start.
	time.Sleep(20 * time.Millisecond)
	f.mu.Lock()
	started := f.loginEmail != ""
	f.mu.Unlock()
	require.False(t, started, "login must wait for the startup check")

	// The check resolves to unauthenticated; the login then proceeds and its
	// result is not wiped by the late bootstrap failure.
	close(gate)
	<-done

	s := a.session.State()
	assert.False(t, s.Loading)
	require.True(t, s.Authenticated)
	assert.Equal(t, "a@b.com", s.User.Email)
}

func TestGuarded_DeflectsToLoginAndReplays(t *testing.T) {
	f := &fakeClient{currentUser: &models.User{ID: 1, Email: "a@b.com"}, currentUserErr: api.ErrUnauthorized}
	a := newTestApp(f)
	ctx := context.Background()

	// Startup check resolves to unauthenticated.
	a.session.Bootstrap(ctx)
	require.False(t, a.session.State().Authenticated)

	// The deflected command logs in and is replayed: 'products' for a
	// regular user hits UserProducts exactly once.
	f.currentUserErr = nil
	stubPrompts(t, "a@b.com", "secret12")
	a.guarded(ctx, "products")

	assert.True(t, a.session.State().Authenticated)
	assert.Equal(t, 1, f.userProductsCalls)
	assert.Empty(t, a.returnTo, "replayed command must be cleared")
}

func TestReplayPending_RequiresLogin(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(f)
	a.returnTo = "products"

	a.replayPending(context.Background())

	assert.Equal(t, "products", a.returnTo, "pending command survives until a login succeeds")
	assert.Equal(t, 0, f.userProductsCalls)
}

func TestNavigateToLogin_DropsPendingReplay(t *testing.T) {
	a := newTestApp(&fakeClient{})
	a.returnTo = "products"

	a.NavigateToLogin()

	assert.Empty(t, a.returnTo)
}

func TestLogout_ViaSessionManager(t *testing.T) {
	f := &fakeClient{currentUser: &models.User{ID: 1, Email: "a@b.com"}}
	a := newTestApp(f)
	ctx := context.Background()
	a.session.Bootstrap(ctx)
	require.True(t, a.session.State().Authenticated)

	a.logoutCmd(ctx)

	assert.False(t, a.session.State().Authenticated)
}
