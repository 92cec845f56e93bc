package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// registerCmd prompts for an email and password and creates a new account.
// The backend logs the new account in as part of registration, but the
// session state is still resolved through the regular login path afterwards
// so there is exactly one authoritative flow.
func (a *App) registerCmd(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if err := a.client.Register(ctx, email, password); err != nil {
		fmt.Println("Registration failed:", err)
		return
	}
	fmt.Println("Account created. Use 'login' to sign in.")
}

// loginCmd prompts for credentials and authenticates through the session
// manager. On success the user the manager resolved is announced and any
// command the guard deflected here is replayed.
//
// The startup session check must resolve first: a still-running bootstrap
// whose CurrentUser fails would clear a login that lands in the window.
func (a *App) loginCmd(ctx context.Context) {
	if a.session.State().Loading {
		fmt.Println("Checking session...")
		a.waitForBootstrap(ctx)
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	u, err := a.session.Login(ctx, email, password)
	if err != nil {
		fmt.Println("Login failed:", err)
		return
	}
	fmt.Printf("Logged in as %s\n", u.Email)
	a.replayPending(ctx)
}

func (a *App) logoutCmd(ctx context.Context) {
	a.session.Logout(ctx)
}

func (a *App) whoamiCmd() {
	s := a.session.State()
	if s.User == nil {
		fmt.Println("Not logged in.")
		return
	}
	role := "user"
	if s.User.Admin {
		role = "admin"
	}
	fmt.Printf("%s (id %d, %s)\n", s.User.Email, s.User.ID, role)
}
