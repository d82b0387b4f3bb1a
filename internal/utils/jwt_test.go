package utils

import (
	"testing"
	"time"

	"depositor/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(&models.UserClaims{UserID: 5, Email: "a@b.c", Role: "user", TokenVersion: 2}, "secret", time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)
	assert.Equal(t, 2, claims.TokenVersion)
	assert.Equal(t, "5", claims.Subject)
}

func TestParseToken_Rejects(t *testing.T) {
	valid, err := GenerateToken(&models.UserClaims{UserID: 5}, "secret", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(valid, "other-secret")
	assert.Error(t, err, "wrong secret")

	expired, err := GenerateToken(&models.UserClaims{UserID: 5}, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseToken("not-a-token", "secret")
	assert.Error(t, err)

	_, err = GenerateToken(&models.UserClaims{UserID: 5}, "", time.Minute)
	assert.Error(t, err)
}
