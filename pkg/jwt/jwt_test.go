package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("u1", "alice@example.com", "secret", 24)
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestParseToken_WrongSecretRejected(t *testing.T) {
	token, err := GenerateToken("u1", "alice@example.com", "secret", 24)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	require.Error(t, err)
}

func TestParseToken_GarbageRejected(t *testing.T) {
	_, err := ParseToken("not.a.token", "secret")
	require.Error(t, err)
}
