package credentials

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)
	return s
}

func TestParseTokenInfo_ReadsRegisteredClaims(t *testing.T) {
	iat := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	exp := iat.Add(15 * time.Minute)

	token := signedToken(t, jwt.RegisteredClaims{
		Subject:   "user@example.com",
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	info, err := ParseTokenInfo(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", info.Subject)
	assert.True(t, info.IssuedAt.Equal(iat))
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.False(t, info.Expired(iat.Add(time.Minute)))
	assert.True(t, info.Expired(exp.Add(time.Second)))
}

func TestParseTokenInfo_ExpiredTokenStillDecodes(t *testing.T) {
	token := signedToken(t, jwt.RegisteredClaims{
		Subject:   "u",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	info, err := ParseTokenInfo(token)
	require.NoError(t, err)
	assert.True(t, info.Expired(time.Now()))
}

func TestParseTokenInfo_NoExpiry(t *testing.T) {
	info, err := ParseTokenInfo(signedToken(t, jwt.MapClaims{"sub": "u"}))
	require.NoError(t, err)
	assert.True(t, info.ExpiresAt.IsZero())
	assert.False(t, info.Expired(time.Now()))
}

func TestParseTokenInfo_OpaqueToken(t *testing.T) {
	_, err := ParseTokenInfo("A1")
	require.Error(t, err)
}
