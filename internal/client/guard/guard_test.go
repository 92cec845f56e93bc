package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpetrovs/pricewatch/internal/client/models"
	"github.com/mpetrovs/pricewatch/internal/client/session"
)

func TestEvaluate(t *testing.T) {
	user := &models.User{ID: 1, Email: "a@b.com"}

	tests := []struct {
		name   string
		state  session.State
		target string
		want   Decision
	}{
		{
			name:   "loading wins over everything",
			state:  session.State{Loading: true},
			target: "products",
			want:   Decision{Action: ShowLoading},
		},
		{
			name:   "loading even with a user present",
			state:  session.State{Loading: true, Authenticated: true, User: user},
			target: "products",
			want:   Decision{Action: ShowLoading},
		},
		{
			name:   "unauthenticated redirects and keeps the target",
			state:  session.State{},
			target: "history",
			want:   Decision{Action: RedirectToLogin, ReturnTo: "history"},
		},
		{
			name:   "authenticated renders",
			state:  session.State{Authenticated: true, User: user},
			target: "products",
			want:   Decision{Action: Render},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.state, tt.target))
		})
	}
}
