// Package handlers adapts service methods to http.HandlerFunc. Services return
// (response, error); the adapters pick the validated body and claims out of the
// request context, invoke the method with a request-scoped logger, and map
// APIError values to their status codes.
package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/riskgate/riskgate/internal/errors"
	"github.com/riskgate/riskgate/internal/helpers"
	"github.com/riskgate/riskgate/internal/models"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BodyFunc is a service method consuming a validated request body.
type BodyFunc[B any, R any] func(logger *zap.Logger, claims models.UserClaims, body B) (R, error)

// GetFunc is a service method with no request body.
type GetFunc[R any] func(logger *zap.Logger, claims models.UserClaims) (R, error)

func requestLogger(r *http.Request) *zap.Logger {
	return zap.L().With(
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
	)
}

func respond(w http.ResponseWriter, logger *zap.Logger, status int, response any, err error) {
	if err != nil {
		var apiErr apierrors.APIError
		if errors.As(err, &apiErr) {
			helpers.RespondWithError(w, apiErr.Status, []string{apiErr.Code})
			return
		}
		logger.Error("Unhandled service error", zap.Error(err))
		helpers.RespondWithError(w, 500, []string{"INTERNAL_SERVER_ERROR"})
		return
	}
	helpers.RespondWithJSON(w, status, response)
}

func bodyHandler[B any, R any](status int, fn BodyFunc[B, R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(r)

		body, ok := r.Context().Value(models.BodyKey{}).(B)
		if !ok {
			logger.Error("Request body missing from context; Validate middleware not mounted")
			helpers.RespondWithError(w, 500, []string{"INTERNAL_SERVER_ERROR"})
			return
		}

		claims, _ := r.Context().Value(models.UserClaimKey{}).(models.UserClaims)

		response, err := fn(logger, claims, body)
		respond(w, logger, status, response, err)
	}
}

// CreateHandler responds 200 on success.
func CreateHandler[B any, R any](fn BodyFunc[B, R]) http.HandlerFunc {
	return bodyHandler(200, fn)
}

// AcceptedHandler responds 202 on success, for submissions acknowledged
// without a payload worth returning.
func AcceptedHandler[B any, R any](fn BodyFunc[B, R]) http.HandlerFunc {
	return bodyHandler(202, fn)
}

// GetOneHandler responds 200 on success.
func GetOneHandler[R any](fn GetFunc[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(r)
		claims, _ := r.Context().Value(models.UserClaimKey{}).(models.UserClaims)

		response, err := fn(logger, claims)
		respond(w, logger, 200, response, err)
	}
}
