package devserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionAuth_IssueVerifyRoundTrip(t *testing.T) {
	a := newSessionAuth("secret", time.Hour)

	token, err := a.issue(42)
	require.NoError(t, err)

	userID, err := a.verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestSessionAuth_RejectsForeignSignature(t *testing.T) {
	token, err := newSessionAuth("secret-a", time.Hour).issue(42)
	require.NoError(t, err)

	_, err = newSessionAuth("secret-b", time.Hour).verify(token)
	assert.Error(t, err)
}

func TestSessionAuth_RejectsExpiredToken(t *testing.T) {
	a := newSessionAuth("secret", -time.Minute)

	token, err := a.issue(42)
	require.NoError(t, err)

	_, err = a.verify(token)
	assert.Error(t, err)
}

func TestSessionAuth_RejectsGarbage(t *testing.T) {
	_, err := newSessionAuth("secret", time.Hour).verify("not-a-token")
	assert.Error(t, err)
}
