package client

import "errors"

var (
	// ErrRequestInFlight is returned when a controller operation is triggered
	// while its previous network call has not completed. Callers are expected
	// to disable the triggering control, this is the backstop.
	ErrRequestInFlight = errors.New("operation already in flight")

	// ErrSecretAlreadyIssued guards second-factor idempotency: one secret per
	// enrollment draft, ever.
	ErrSecretAlreadyIssued = errors.New("second-factor secret already issued for this draft")

	ErrEmailRequired    = errors.New("email is required before requesting a secret")
	ErrSecretNotIssued  = errors.New("second-factor secret has not been issued")
	ErrCodeRequired     = errors.New("one-time code is required")
	ErrDraftIncomplete  = errors.New("registration draft is incomplete")
	ErrAlreadySubmitted = errors.New("registration already submitted")

	// ErrInvalidCode is retryable: the challenge context survives it.
	ErrInvalidCode = errors.New("invalid one-time code")

	ErrChallengeIncomplete = errors.New("login challenge is missing identity fields")
	ErrChallengeConsumed   = errors.New("login challenge already consumed")
)
