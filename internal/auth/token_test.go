package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	token, tokenID, expiresAt, err := GenerateSessionToken("test-secret", "admin@example.com", 24*time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Len(t, tokenID, 32) // 16 random bytes hex-encoded
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := ParseSessionToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Subject)
	assert.Equal(t, tokenID, claims.ID)
}

func TestSessionToken_UniquePerLogin(t *testing.T) {
	_, id1, _, err := GenerateSessionToken("test-secret", "admin@example.com", time.Hour)
	require.NoError(t, err)
	_, id2, _, err := GenerateSessionToken("test-secret", "admin@example.com", time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, _, _, err := GenerateSessionToken("test-secret", "admin@example.com", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionToken_Expired(t *testing.T) {
	token, _, _, err := GenerateSessionToken("test-secret", "admin@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken("test-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionToken_Garbage(t *testing.T) {
	_, err := ParseSessionToken("test-secret", "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConstantTimeEquals(t *testing.T) {
	assert.True(t, constantTimeEquals("9877", "9877"))
	assert.False(t, constantTimeEquals("9876", "9877"))
	assert.False(t, constantTimeEquals("", "9877"))
	assert.False(t, constantTimeEquals("98777", "9877"))
}
