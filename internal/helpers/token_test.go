package helpers

import (
	"testing"

	"github.com/riskgate/riskgate/internal/configuration"
	"github.com/riskgate/riskgate/internal/models"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Email: "alice@example.com",
	}
}

// TestNewSessionToken tests session token issuance.
func TestNewSessionToken(t *testing.T) {
	t.Run("should issue a parseable token with the user claims", func(t *testing.T) {
		user := testUser()

		token, err := NewSessionToken(testJWTSecret, user, 60)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := ParseSessionToken(testJWTSecret, token, false)
		require.NoError(t, err)
		assert.Equal(t, user.Email, claims.Email)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, configuration.AppName, claims.Issuer)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		token, err := NewSessionToken(testJWTSecret, testUser(), -1)
		require.NoError(t, err)

		_, err = ParseSessionToken(testJWTSecret, token, false)
		assert.Error(t, err)
	})
}

// TestParseSessionToken tests token validation edge cases.
func TestParseSessionToken(t *testing.T) {
	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		token, err := NewSessionToken("other-secret", testUser(), 60)
		require.NoError(t, err)

		_, err = ParseSessionToken(testJWTSecret, token, false)
		assert.Error(t, err)
	})

	t.Run("should reject garbage input", func(t *testing.T) {
		_, err := ParseSessionToken(testJWTSecret, "not-a-token", false)
		assert.Error(t, err)
	})

	t.Run("should require the Bearer prefix when asked", func(t *testing.T) {
		token, err := NewSessionToken(testJWTSecret, testUser(), 60)
		require.NoError(t, err)

		_, err = ParseSessionToken(testJWTSecret, token, true)
		assert.Error(t, err)

		claims, err := ParseSessionToken(testJWTSecret, "Bearer "+token, true)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", claims.Email)
	})
}

// TestCreateHash tests argon2id password hashing.
func TestCreateHash(t *testing.T) {
	t.Run("should produce a hash that verifies against the password", func(t *testing.T) {
		hash, err := CreateHash("correct horse battery staple")
		require.NoError(t, err)

		match, err := argon2id.ComparePasswordAndHash("correct horse battery staple", hash)
		require.NoError(t, err)
		assert.True(t, match)

		match, err = argon2id.ComparePasswordAndHash("wrong password", hash)
		require.NoError(t, err)
		assert.False(t, match)
	})

	t.Run("should salt hashes", func(t *testing.T) {
		hash1, err := CreateHash("password")
		require.NoError(t, err)
		hash2, err := CreateHash("password")
		require.NoError(t, err)

		assert.NotEqual(t, hash1, hash2)
	})
}
