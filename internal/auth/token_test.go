package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewTokenManager("secret", "foodlink", time.Hour)
	require.NoError(t, err)

	token, err := m.Issue("user-123", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "foodlink", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer, err := NewTokenManager("secret-a", "foodlink", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-b", "foodlink", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("user-123", "alice")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	m, err := NewTokenManager("secret", "foodlink", time.Nanosecond)
	require.NoError(t, err)

	token, err := m.Issue("user-123", "alice")
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongIssuer(t *testing.T) {
	issuer, err := NewTokenManager("secret", "other-service", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret", "foodlink", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("user-123", "alice")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	m, err := NewTokenManager("secret", "foodlink", time.Hour)
	require.NoError(t, err)

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerValidation(t *testing.T) {
	_, err := NewTokenManager("", "foodlink", time.Hour)
	assert.Error(t, err)
	_, err = NewTokenManager("secret", "", time.Hour)
	assert.Error(t, err)
	_, err = NewTokenManager("secret", "foodlink", 0)
	assert.Error(t, err)
}
