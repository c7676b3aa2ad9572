// Package client implements the enrollment and risk-adaptive login flows
// against the riskgate API: TOTP enrollment at signup, first-factor login with
// client network context, and the conditional step-up to a TOTP challenge. The
// three controllers hand immutable context snapshots to each other; the only
// shared state is the session store written on success.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/go-resty/resty/v2"
)

const requestTimeout = 10 * time.Second

// stepUpStatus plus stepUpMarker in the error body is the protocol contract
// for escalation. Both must match; nothing else is ever treated as a step-up
// signal.
const (
	stepUpStatus = 417
	stepUpMarker = "TOTP_REQUIRED"
)

// ClientContext is the network-origin metadata gathered once per login attempt
// and forwarded unchanged on both the primary and the step-up request. The
// server treats it as opaque.
type ClientContext struct {
	IP          string  `json:"ip,omitempty"`
	City        string  `json:"city,omitempty"`
	Region      string  `json:"region,omitempty"`
	CountryName string  `json:"country_name,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Timezone    string  `json:"timezone,omitempty"`
	Org         string  `json:"org,omitempty"`
	ASN         string  `json:"asn,omitempty"`
}

// LoginChallenge is the context carried from a flagged primary login into the
// step-up attempt: the identity exactly as submitted, and the client context
// already gathered. It is consumed by exactly one successful step-up.
type LoginChallenge struct {
	Email         string
	Password      string
	ClientContext ClientContext
}

// Outcome discriminates the three primary-login verdicts. It is decided once,
// at the network boundary, and never re-inferred downstream.
type Outcome int

const (
	OutcomeAuthenticated Outcome = iota + 1
	OutcomeStepUpRequired
	OutcomeRejected
)

// LoginResult is the typed verdict of a primary login. Exactly one of Token,
// Challenge or Reason is meaningful, selected by Outcome.
type LoginResult struct {
	Outcome   Outcome
	Token     string
	Challenge *LoginChallenge
	Reason    string
}

// RegistrationRequest mirrors the signup endpoint body.
type RegistrationRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Secret   string `json:"secret"`
	Totp     string `json:"totp"`
}

type secretResponse struct {
	Secret string `json:"secret"`
}

type loginRequest struct {
	Email         string        `json:"email"`
	Password      string        `json:"password"`
	ClientContext ClientContext `json:"client_context"`
}

type stepUpRequest struct {
	Email         string        `json:"email"`
	Password      string        `json:"password"`
	ClientContext ClientContext `json:"client_context"`
	Totp          string        `json:"totp"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type errorResponse struct {
	Errors []string `json:"errors"`
}

// API is the HTTP client for the auth endpoints. Requests are bounded by a
// fixed timeout; authentication submissions are never retried automatically.
type API struct {
	http *resty.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(requestTimeout).
			SetHeader("Content-Type", "application/json"),
	}
}

func errorCodes(resp *resty.Response) []string {
	var body errorResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil
	}
	return body.Errors
}

// FetchSecret requests a fresh second-factor secret. Failures are retryable;
// the caller's idempotency gate only closes on success.
func (a *API) FetchSecret(ctx context.Context) (string, error) {
	var result secretResponse

	resp, err := a.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/auth/secret")
	if err != nil {
		return "", fmt.Errorf("fetching second-factor secret: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("fetching second-factor secret: status %d", resp.StatusCode())
	}

	return result.Secret, nil
}

// Register submits a completed registration. Server rejection reasons are
// surfaced verbatim so the user can correct the draft.
func (a *API) Register(ctx context.Context, registration RegistrationRequest) error {
	resp, err := a.http.R().
		SetContext(ctx).
		SetBody(registration).
		Post("/auth/signup")
	if err != nil {
		return fmt.Errorf("submitting registration: %w", err)
	}
	if !resp.IsSuccess() {
		if codes := errorCodes(resp); len(codes) > 0 {
			return fmt.Errorf("registration rejected: %v", codes)
		}
		return fmt.Errorf("registration rejected: status %d", resp.StatusCode())
	}

	return nil
}

// Login performs the first-factor attempt and discriminates the verdict. A
// transport failure with no server response maps to a rejection: the flow must
// never crash, and a failed transport earns no weaker treatment than a denial.
func (a *API) Login(ctx context.Context, email, password string, clientContext ClientContext) LoginResult {
	var result tokenResponse

	resp, err := a.http.R().
		SetContext(ctx).
		SetBody(loginRequest{Email: email, Password: password, ClientContext: clientContext}).
		SetResult(&result).
		Post("/auth/login")
	if err != nil {
		return LoginResult{Outcome: OutcomeRejected, Reason: "login request failed"}
	}

	switch {
	case resp.IsSuccess() && result.Token != "":
		return LoginResult{Outcome: OutcomeAuthenticated, Token: result.Token}

	case resp.StatusCode() == stepUpStatus && slices.Contains(errorCodes(resp), stepUpMarker):
		return LoginResult{
			Outcome: OutcomeStepUpRequired,
			Challenge: &LoginChallenge{
				Email:         email,
				Password:      password,
				ClientContext: clientContext,
			},
		}

	default:
		return LoginResult{Outcome: OutcomeRejected, Reason: "invalid email or password"}
	}
}

// StepUp submits the second-factor attempt and returns the session token.
func (a *API) StepUp(ctx context.Context, challenge LoginChallenge, code string) (string, error) {
	var result tokenResponse

	resp, err := a.http.R().
		SetContext(ctx).
		SetBody(stepUpRequest{
			Email:         challenge.Email,
			Password:      challenge.Password,
			ClientContext: challenge.ClientContext,
			Totp:          code,
		}).
		SetResult(&result).
		Post("/auth/login/totp")
	if err != nil {
		return "", ErrInvalidCode
	}
	if !resp.IsSuccess() || result.Token == "" {
		return "", ErrInvalidCode
	}

	return result.Token, nil
}
