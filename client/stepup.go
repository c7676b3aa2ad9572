package client

import (
	"context"
	"sync"
)

// StepUpState tracks the challenge flow: a rejected code returns to
// AwaitingCode with the challenge context intact.
type StepUpState int

const (
	StepUpAwaitingCode StepUpState = iota
	StepUpSucceeded
)

// StepUpController drives the second-factor attempt. It is constructed with
// the LoginChallenge handed over at escalation; the identity fields are
// read-only here so the challenge always matches what the server flagged. The
// user supplies only the one-time code, as many times as it takes.
type StepUpController struct {
	api      *API
	sessions *SessionStore

	mu        sync.Mutex
	challenge LoginChallenge
	state     StepUpState
	inFlight  bool
}

func NewStepUpController(api *API, sessions *SessionStore, challenge LoginChallenge) (*StepUpController, error) {
	if challenge.Email == "" || challenge.Password == "" {
		return nil, ErrChallengeIncomplete
	}
	return &StepUpController{api: api, sessions: sessions, challenge: challenge}, nil
}

// Email exposes the challenge identity for display; there is no setter.
func (c *StepUpController) Email() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.challenge.Email
}

// State returns the current flow state.
func (c *StepUpController) State() StepUpState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SubmitCode sends the one-time code with the retained challenge context. An
// invalid code is retryable without re-entering anything; success stores the
// session token and consumes the challenge.
func (c *StepUpController) SubmitCode(ctx context.Context, code string) error {
	c.mu.Lock()
	if c.state == StepUpSucceeded {
		c.mu.Unlock()
		return ErrChallengeConsumed
	}
	if code == "" {
		c.mu.Unlock()
		return ErrCodeRequired
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrRequestInFlight
	}
	c.inFlight = true
	challenge := c.challenge
	c.mu.Unlock()

	token, err := c.api.StepUp(ctx, challenge, code)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		// Still AwaitingCode; the challenge survives for the next attempt.
		return err
	}

	if err := c.sessions.Set(token); err != nil {
		return err
	}

	c.state = StepUpSucceeded
	c.challenge = LoginChallenge{}
	return nil
}
