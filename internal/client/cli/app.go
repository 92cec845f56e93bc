// Package cli is the interactive terminal front end of the pricewatch
// client: a REPL over the session manager, the catalog service, and the
// route guard.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mpetrovs/pricewatch/internal/client/api"
	"github.com/mpetrovs/pricewatch/internal/client/config"
	"github.com/mpetrovs/pricewatch/internal/client/services"
	"github.com/mpetrovs/pricewatch/internal/client/session"
	"github.com/mpetrovs/pricewatch/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	client  api.Client
	session *session.Manager
	catalog services.CatalogService
	reader  *bufio.Reader

	// returnTo holds the command the guard deflected to the login view, so a
	// successful login can replay it.
	returnTo string
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	client, err := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	a := &App{config: c, log: log, client: client, reader: bufio.NewReader(os.Stdin)}
	a.session = session.NewManager(client, a, log)
	a.catalog = services.NewCatalogService(client, a.session)
	return a, nil
}

// Run starts the session check in the background and enters the REPL. The
// guard keeps protected commands waiting until the check resolves.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	go a.session.Bootstrap(ctx)
	a.Root(ctx)
}

// NavigateToLogin implements session.Navigator: the logout side effect in a
// terminal is telling the user they are back at the login prompt. Any pending
// replay is dropped with the session.
func (a *App) NavigateToLogin() {
	a.returnTo = ""
	fmt.Println("You are logged out. Use 'login' to sign in again.")
}

func (a *App) isLoggedIn() bool {
	return a.session.State().Authenticated
}

// waitForBootstrap blocks until the startup session check resolves or the
// context is done.
func (a *App) waitForBootstrap(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for a.session.State().Loading {
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
