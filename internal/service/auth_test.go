package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gamerules-backend/internal/apperror"
)

func TestAuthService_VerifyToken(t *testing.T) {
	authService := NewAuthService("test-secret")

	t.Run("Round-trips a generated token", func(t *testing.T) {
		// Given: a token issued for alice
		token, err := authService.GenerateToken("alice")
		require.NoError(t, err)

		// When: verifying it
		username, err := authService.VerifyToken(token)

		// Then: the username comes back
		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("Rejects an empty token", func(t *testing.T) {
		// When: verifying an empty string
		_, err := authService.VerifyToken("")

		// Then: it should fail with ErrUnauthenticated
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("Rejects a token signed with another secret", func(t *testing.T) {
		// Given: a token from a different issuer
		otherService := NewAuthService("other-secret")
		token, err := otherService.GenerateToken("alice")
		require.NoError(t, err)

		// When: verifying it against our secret
		_, err = authService.VerifyToken(token)

		// Then: it should fail with ErrUnauthenticated
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("Rejects an expired token", func(t *testing.T) {
		// Given: a token that expired an hour ago
		claims := jwt.MapClaims{
			"username": "alice",
			"exp":      time.Now().Add(-time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		// When: verifying it
		_, err = authService.VerifyToken(token)

		// Then: it should fail with ErrUnauthenticated
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("Rejects a valid token without a username claim", func(t *testing.T) {
		// Given: a signed token missing the username
		claims := jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		// When: verifying it
		_, err = authService.VerifyToken(token)

		// Then: it should fail with ErrUnauthenticated
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("Rejects garbage", func(t *testing.T) {
		// When: verifying something that is not a JWT at all
		_, err := authService.VerifyToken("not-a-token")

		// Then: it should fail with ErrUnauthenticated
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})
}
