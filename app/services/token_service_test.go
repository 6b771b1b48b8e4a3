package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestTokenService creates a token service for testing with symmetric key
func createTestTokenService(accessTokenTTL time.Duration) (TokenService, error) {
	return NewTokenService(
		accessTokenTTL,
		"test-issuer",
		"test-audience",
		false, // useRSAKeys
		"",    // privateKeyPEM
		"",    // publicKeyPEM
		"test-secret-key-for-jwt-signing-32-chars", // secretKey
	)
}

func TestNewTokenService(t *testing.T) {
	t.Run("valid symmetric key configuration", func(t *testing.T) {
		service, err := createTestTokenService(15 * time.Minute)
		require.NoError(t, err)
		assert.NotNil(t, service)
	})

	t.Run("missing secret key", func(t *testing.T) {
		service, err := NewTokenService(15*time.Minute, "test-issuer", "test-audience", false, "", "", "")
		require.Error(t, err)
		assert.Nil(t, service)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("RSA mode without keys", func(t *testing.T) {
		service, err := NewTokenService(15*time.Minute, "test-issuer", "test-audience", true, "", "", "")
		require.Error(t, err)
		assert.Nil(t, service)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service, err := createTestTokenService(15 * time.Minute)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		token, err := service.GenerateAccessToken(42)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		require.NotNil(t, claims)
		assert.Equal(t, uint(42), claims.UserID)
	})

	t.Run("tokens carry unique ids", func(t *testing.T) {
		first, err := service.GenerateAccessToken(42)
		require.NoError(t, err)
		second, err := service.GenerateAccessToken(42)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("garbage token", func(t *testing.T) {
		claims, err := service.ValidateToken("not.a.token")
		require.Error(t, err)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("token signed with different secret", func(t *testing.T) {
		other, err := NewTokenService(15*time.Minute, "test-issuer", "test-audience", false, "", "",
			"another-secret-key-for-jwt-signing-32ch")
		require.NoError(t, err)

		token, err := other.GenerateAccessToken(42)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.Error(t, err)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived, err := createTestTokenService(-time.Minute)
		require.NoError(t, err)

		token, err := shortLived.GenerateAccessToken(42)
		require.NoError(t, err)

		claims, err := shortLived.ValidateToken(token)
		require.Error(t, err)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}
