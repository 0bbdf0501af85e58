package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	require.NoError(t, CheckPassword("correct horse battery staple", hash))
	require.Error(t, CheckPassword("wrong password", hash))
}

func TestSessionRoundTrip(t *testing.T) {
	s := NewSessions("secret", time.Hour)

	token, err := s.Issue("user-1")
	require.NoError(t, err)

	userID, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
}

func TestSessionExpired(t *testing.T) {
	s := NewSessions("secret", -time.Minute)

	token, err := s.Issue("user-1")
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionWrongSecret(t *testing.T) {
	token, err := NewSessions("secret-a", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewSessions("secret-b", time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionGarbageToken(t *testing.T) {
	_, err := NewSessions("secret", time.Hour).Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
