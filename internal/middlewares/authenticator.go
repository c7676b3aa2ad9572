package middlewares

import (
	"context"
	"net/http"

	"github.com/riskgate/riskgate/internal/helpers"
	"github.com/riskgate/riskgate/internal/models"
)

// Authenticate guards protected routes: a valid bearer session token is
// exchanged for claims in the request context, anything else is a 403.
func Authenticate(jwtSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			accessToken := r.Header.Get("Authorization")
			userClaims, err := helpers.ParseSessionToken(jwtSecret, accessToken, true)
			if err != nil {
				helpers.RespondWithError(w, 403, []string{"FORBIDDEN"})
				return
			}

			ctx := context.WithValue(r.Context(), models.UserClaimKey{}, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}
