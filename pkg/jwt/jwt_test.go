package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParse(t *testing.T) {
	tok, err := GenerateToken(secret, 42, AudienceChild, TypeAccess, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(secret, TypeAccess, tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, AudienceChild, claims.Audience)
}

func TestParseRejectsWrongType(t *testing.T) {
	tok, err := GenerateToken(secret, 1, AudienceParent, TypeRefresh, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(secret, TypeAccess, tok)
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := GenerateToken(secret, 1, AudienceParent, TypeAccess, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other-secret"), TypeAccess, tok)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	tok, err := GenerateToken(secret, 1, AudienceChild, TypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TypeAccess, tok)
	assert.Error(t, err)
}

func TestShouldRotateRefreshToken(t *testing.T) {
	tok, err := GenerateToken(secret, 1, AudienceParent, TypeRefresh, 10*time.Minute)
	require.NoError(t, err)
	claims, err := ParseToken(secret, TypeRefresh, tok)
	require.NoError(t, err)

	assert.False(t, ShouldRotateRefreshToken(claims, 5*time.Minute))
	assert.True(t, ShouldRotateRefreshToken(claims, time.Hour))
}
