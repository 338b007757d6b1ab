// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateJWT(userID, "shopper", "customer", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "shopper", claims.Username)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "elite-store", claims.Issuer)
}

func TestValidateJWTExpired(t *testing.T) {
	token, err := GenerateJWT(uuid.New(), "shopper", "customer", -1)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateRefreshToken(userID, 24)
	require.NoError(t, err)

	subject, err := ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), subject)
}

func TestRefreshTokenWrongSecret(t *testing.T) {
	token, err := GenerateRefreshToken(uuid.New(), 24)
	require.NoError(t, err)

	SetJWTSecret("a-different-secret")
	defer SetJWTSecret("your-secret-key-change-in-production")

	_, err = ValidateRefreshToken(token)
	assert.Error(t, err)
}
