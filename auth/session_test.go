package auth

import (
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mr *miniredis.Miniredis

func TestMain(m *testing.M) {
	var err error
	mr, err = miniredis.Run()
	if err != nil {
		panic(err)
	}
	os.Setenv("REDIS_ADDR", mr.Addr())

	code := m.Run()
	mr.Close()
	os.Exit(code)
}

func TestSessionLifecycle(t *testing.T) {
	token, err := CreateSession(7, "alice", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, err := GetSession(token)
	require.NoError(t, err)
	assert.Equal(t, 7, sess.UserID)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, "alice@example.com", sess.Email)
	assert.False(t, sess.CreatedAt.IsZero())

	require.NoError(t, DestroySession(token))

	_, err = GetSession(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetSessionUnknownToken(t *testing.T) {
	_, err := GetSession("deadbeef")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionExpires(t *testing.T) {
	token, err := CreateSession(1, "bob", "bob@example.com")
	require.NoError(t, err)

	mr.FastForward(25 * time.Hour)

	_, err = GetSession(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionTokensAreUnique(t *testing.T) {
	a, err := CreateSession(1, "bob", "bob@example.com")
	require.NoError(t, err)
	b, err := CreateSession(1, "bob", "bob@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64)
}

func TestDestroySessionIdempotent(t *testing.T) {
	require.NoError(t, DestroySession("never-existed"))
}
