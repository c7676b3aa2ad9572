package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskgate/riskgate/internal/helpers"
	"github.com/riskgate/riskgate/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authTestJWTSecret = "test-secret-key-for-authenticator-testing"

// TestAuthenticate tests the bearer token guard on protected routes.
func TestAuthenticate(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "alice@example.com"}

	protected := Authenticate(authTestJWTSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(models.UserClaimKey{}).(models.UserClaims)
		require.True(t, ok, "claims should be available in the context")
		assert.Equal(t, "alice@example.com", claims.Email)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("should exchange a valid bearer token for claims", func(t *testing.T) {
		token, err := helpers.NewSessionToken(authTestJWTSecret, user, 60)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()

		protected.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("should return FORBIDDEN without a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		recorder := httptest.NewRecorder()

		protected.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.JSONEq(t, `{"errors": ["FORBIDDEN"]}`, recorder.Body.String())
	})

	t.Run("should return FORBIDDEN without the Bearer prefix", func(t *testing.T) {
		token, err := helpers.NewSessionToken(authTestJWTSecret, user, 60)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", token)
		recorder := httptest.NewRecorder()

		protected.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("should return FORBIDDEN for a token signed with another secret", func(t *testing.T) {
		token, err := helpers.NewSessionToken("another-secret", user, 60)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()

		protected.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
