package client

import (
	"context"
	"fmt"
	"sync"
)

// EnrollmentState tracks the signup flow. SecretIssued is reachable only once
// per draft; a failed submission returns to SecretIssued, never to Drafting.
type EnrollmentState int

const (
	StateDrafting EnrollmentState = iota
	StateSecretIssued
	StateSubmitted
)

// RegistrationDraft is the in-progress signup, an immutable value replaced
// wholesale on every field update so that submission always reads the latest
// replaced value.
type RegistrationDraft struct {
	FullName string
	Email    string
	Password string
	Secret   string
	Totp     string
}

// EnrollmentController drives signup: collect identity and credential fields,
// fetch the second-factor secret exactly once, render its provisioning URI,
// and submit the completed registration.
type EnrollmentController struct {
	api    *API
	issuer string

	mu       sync.Mutex
	draft    RegistrationDraft
	state    EnrollmentState
	inFlight bool
}

func NewEnrollmentController(api *API, issuer string) *EnrollmentController {
	return &EnrollmentController{api: api, issuer: issuer}
}

// UpdateField replaces the draft with a copy carrying the new value. Secret is
// not reachable here: it is only ever set by RequestSecret.
func (c *EnrollmentController) UpdateField(name string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft := c.draft
	switch name {
	case "fullName":
		draft.FullName = value
	case "email":
		draft.Email = value
	case "password":
		draft.Password = value
	case "totp":
		draft.Totp = value
	default:
		return fmt.Errorf("unknown registration field %q", name)
	}
	c.draft = draft
	return nil
}

// Draft returns a snapshot of the current draft.
func (c *EnrollmentController) Draft() RegistrationDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// State returns the current flow state.
func (c *EnrollmentController) State() EnrollmentState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RequestSecret fetches the second-factor secret for this draft and returns
// the provisioning URI to render. At most one call may ever succeed: once the
// secret is issued the operation rejects permanently for this draft. A failed
// fetch leaves the draft unsecreted and may be retried.
func (c *EnrollmentController) RequestSecret(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.state != StateDrafting {
		c.mu.Unlock()
		return "", ErrSecretAlreadyIssued
	}
	if c.draft.Email == "" {
		c.mu.Unlock()
		return "", ErrEmailRequired
	}
	if c.inFlight {
		c.mu.Unlock()
		return "", ErrRequestInFlight
	}
	c.inFlight = true
	email := c.draft.Email
	c.mu.Unlock()

	secret, err := c.api.FetchSecret(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		return "", err
	}

	draft := c.draft
	draft.Secret = secret
	c.draft = draft
	c.state = StateSecretIssued

	return provisioningURI(c.issuer, email, secret), nil
}

// ProvisioningURI re-renders the URI for the issued secret, e.g. for a fresh
// QR code after a re-render. It issues no network call.
func (c *EnrollmentController) ProvisioningURI() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft.Secret == "" {
		return "", ErrSecretNotIssued
	}
	return provisioningURI(c.issuer, c.draft.Email, c.draft.Secret), nil
}

// SubmitRegistration sends the completed draft. On rejection the draft and the
// issued secret are preserved so the user can correct fields and resubmit.
func (c *EnrollmentController) SubmitRegistration(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateSubmitted {
		c.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if c.draft.Secret == "" {
		c.mu.Unlock()
		return ErrSecretNotIssued
	}
	if c.draft.Totp == "" {
		c.mu.Unlock()
		return ErrCodeRequired
	}
	if c.draft.FullName == "" || c.draft.Email == "" || c.draft.Password == "" {
		c.mu.Unlock()
		return ErrDraftIncomplete
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrRequestInFlight
	}
	c.inFlight = true
	draft := c.draft
	c.mu.Unlock()

	err := c.api.Register(ctx, RegistrationRequest{
		FullName: draft.FullName,
		Email:    draft.Email,
		Password: draft.Password,
		Secret:   draft.Secret,
		Totp:     draft.Totp,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		// Back to SecretIssued: the draft stays correctable, the secret stays
		// bound.
		return err
	}

	c.state = StateSubmitted
	return nil
}

// The provisioning URI shape must be reproduced exactly for authenticator app
// compatibility.
func provisioningURI(issuer, email, secret string) string {
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s", issuer, email, secret, issuer)
}
