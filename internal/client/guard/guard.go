// Package guard decides whether a protected view may be shown for a given
// session state. It is a pure function of the state: rendering and navigation
// are the view layer's job.
package guard

import "github.com/mpetrovs/pricewatch/internal/client/session"

// Action is what the view layer should do with a protected target.
type Action int

const (
	// ShowLoading: the startup session check is still outstanding. Render a
	// neutral waiting indicator and nothing else; redirecting now would
	// bounce a user whose session is about to be confirmed.
	ShowLoading Action = iota

	// RedirectToLogin: no principal; send the user to the login view.
	RedirectToLogin

	// Render: authenticated; show the protected content unmodified.
	Render
)

// Decision carries the action and, for redirects, the originally requested
// target so the login flow can return there afterwards.
type Decision struct {
	Action   Action
	ReturnTo string
}

// Evaluate gates access to the protected target for the given state.
func Evaluate(s session.State, target string) Decision {
	if s.Loading {
		return Decision{Action: ShowLoading}
	}
	if !s.Authenticated {
		return Decision{Action: RedirectToLogin, ReturnTo: target}
	}
	return Decision{Action: Render}
}
