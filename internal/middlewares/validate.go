package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskgate/riskgate/internal/helpers"
	"github.com/riskgate/riskgate/internal/models"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

// Validate decodes and validates the JSON request body as T, then stores it in
// the request context under models.BodyKey for the handler layer.
func Validate[T any](next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		var body T

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			helpers.RespondWithError(w, 400, []string{"INVALID_BODY"})
			return
		}

		if err := validate.Struct(body); err != nil {
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) {
				codes := make([]string, 0, len(validationErrors))
				for _, fieldErr := range validationErrors {
					codes = append(codes, fmt.Sprintf("%s_%s",
						strings.ToUpper(fieldErr.Field()),
						strings.ToUpper(fieldErr.Tag())))
				}
				helpers.RespondWithError(w, 400, codes)
				return
			}
			helpers.RespondWithError(w, 400, []string{"INVALID_BODY"})
			return
		}

		ctx := context.WithValue(r.Context(), models.BodyKey{}, body)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(fn)
}
