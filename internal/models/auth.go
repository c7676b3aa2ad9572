package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ClientContext is the network-origin metadata a client gathers once per login
// attempt and forwards unchanged on both the primary and the step-up request.
// It is treated as an opaque bag: the scoring service owns its interpretation.
type ClientContext map[string]any

type SignupBody struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Email    string `json:"email"     validate:"required,email,max=254"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	Secret   string `json:"secret"    validate:"required,max=128"`
	Totp     string `json:"totp"      validate:"required,len=6,numeric"`
}

type AuthSecretResponse struct {
	Secret string `json:"secret"`
}

type AuthLoginBody struct {
	Email         string        `json:"email"          validate:"required,email,max=254"`
	Password      string        `json:"password"       validate:"required,max=72"`
	ClientContext ClientContext `json:"client_context" validate:"omitempty"`
}

type AuthStepUpBody struct {
	Email         string        `json:"email"          validate:"required,email,max=254"`
	Password      string        `json:"password"       validate:"required,max=72"`
	ClientContext ClientContext `json:"client_context" validate:"omitempty"`
	Totp          string        `json:"totp"           validate:"required,len=6,numeric"`
}

type AuthLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type AuthVerifyBody struct {
	Token string `json:"token" validate:"required,max=2048"`
}

// UserClaimKey is the context key under which authenticated claims are stored.
type UserClaimKey struct{}

// BodyKey is the context key under which the validated request body is stored
// by the Validate middleware for the handler layer to pick up.
type BodyKey struct{}

type UserClaims struct {
	Email  string    `json:"email"`
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}
