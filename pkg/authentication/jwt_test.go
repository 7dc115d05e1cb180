package authentication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T) *JWT {
	t.Helper()
	key, err := GenerateKey(32)
	require.NoError(t, err)
	j, err := NewJWT(key)
	require.NoError(t, err)
	return j
}

func TestTokenRoundTrip(t *testing.T) {
	j := newTestJWT(t)
	token, err := j.NewToken("guest@example.com", "bookings", time.Minute)
	require.NoError(t, err)

	subject, err := j.Parse(token, "bookings")
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", subject)
}

func TestTokenWrongScope(t *testing.T) {
	j := newTestJWT(t)
	token, _ := j.NewToken("guest@example.com", "bookings", time.Minute)
	_, err := j.Parse(token, "admin")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	j := newTestJWT(t)
	token, _ := j.NewToken("guest@example.com", "bookings", -time.Minute)
	_, err := j.Parse(token, "bookings")
	assert.Error(t, err)
}

func TestTokenFromAnotherKey(t *testing.T) {
	token, _ := newTestJWT(t).NewToken("guest@example.com", "bookings", time.Minute)
	_, err := newTestJWT(t).Parse(token, "bookings")
	assert.Error(t, err)
}

func TestEmptyKey(t *testing.T) {
	_, err := NewJWT("")
	assert.Error(t, err)
}
