package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT() *JWT {
	return NewJWT(Options{
		AccessSecret:  "access-secret",
		AccessTTL:     time.Hour,
		RefreshSecret: "refresh-secret",
		RefreshTTL:    24 * time.Hour,
	})
}

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)
	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_RefreshToken_Roundtrip(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	refresh, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)

	got, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_RefreshTokens_AreUnique(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	first, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)
	second, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)
	_, err = j.ParseRefreshToken(access)
	require.Error(t, err)

	refresh, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)
	_, err = j.ParseAccessToken(refresh)
	require.Error(t, err)
}

func TestJWT_SeparateSecrets(t *testing.T) {
	j := newTestJWT()
	other := NewJWT(Options{AccessSecret: "other", AccessTTL: time.Hour, RefreshSecret: "other", RefreshTTL: time.Hour})

	access, err := other.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = j.ParseAccessToken(access)
	require.Error(t, err)
}

func TestJWT_ExpiryValidation(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	issued := time.Now().Add(-2 * time.Hour)
	j.now = func() time.Time { return issued }
	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.ParseAccessToken(access)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse access token")
}

func TestJWT_Garbage(t *testing.T) {
	j := newTestJWT()

	_, err := j.ParseAccessToken("not-a-token")
	require.Error(t, err)
}
