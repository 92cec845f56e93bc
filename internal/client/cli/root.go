package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mpetrovs/pricewatch/internal/client/guard"
)

func (a *App) getStatus() string {
	s := a.session.State()
	switch {
	case s.Loading:
		return "(checking session)"
	case s.User != nil:
		return fmt.Sprintf("(%s)", s.User.Email)
	default:
		return ""
	}
}

// Root runs the REPL. Commands that need a principal go through the route
// guard: while the startup check is outstanding the guard shows a waiting
// indicator, an unauthenticated user is deflected to the login flow, and the
// original command is replayed after a successful login.
func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to pricewatch CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("pw %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: whoami, products, product <id>, track, history, notifications, read <id>, unread <id>, notify, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}
		case "register":
			a.registerCmd(ctx)
		case "login":
			a.loginCmd(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			a.guarded(ctx, line)
		}
	}
}

// guarded routes one protected command line through the guard.
func (a *App) guarded(ctx context.Context, line string) {
	d := guard.Evaluate(a.session.State(), line)

	if d.Action == guard.ShowLoading {
		fmt.Println("Checking session...")
		a.waitForBootstrap(ctx)
		d = guard.Evaluate(a.session.State(), line)
	}

	switch d.Action {
	case guard.RedirectToLogin:
		a.returnTo = d.ReturnTo
		fmt.Println("Please log in first.")
		a.loginCmd(ctx)
	case guard.Render:
		a.exec(ctx, line)
	}
}

// exec dispatches a protected command. The guard has already confirmed a
// principal is present.
func (a *App) exec(ctx context.Context, line string) {
	parts := strings.Fields(line)
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "whoami":
		a.whoamiCmd()
	case "products":
		a.productsCmd(ctx)
	case "product":
		a.productCmd(ctx, args)
	case "track":
		a.trackCmd(ctx)
	case "history":
		a.historyCmd(ctx)
	case "notifications":
		a.notificationsCmd(ctx)
	case "read":
		a.setReadCmd(ctx, args, true)
	case "unread":
		a.setReadCmd(ctx, args, false)
	case "notify":
		a.notifyCmd(ctx)
	case "logout":
		a.logoutCmd(ctx)
	default:
		fmt.Println("Unknown command:", cmd)
	}
}

// replayPending re-runs the command the guard deflected to login, if any.
func (a *App) replayPending(ctx context.Context) {
	if a.returnTo == "" || !a.isLoggedIn() {
		return
	}
	line := a.returnTo
	a.returnTo = ""
	a.exec(ctx, line)
}
