package client

import (
	"context"
	"sync"
)

// LoginController drives the first-factor attempt. It gathers the client
// context, submits the credential, and interprets the server's verdict as
// success, plain failure, or a demand for step-up. On step-up it hands an
// immutable LoginChallenge to a new StepUpController; nothing else crosses
// that boundary.
type LoginController struct {
	api      *API
	geo      *GeoClient
	sessions *SessionStore

	mu       sync.Mutex
	email    string
	password string
	inFlight bool
}

func NewLoginController(api *API, geo *GeoClient, sessions *SessionStore) *LoginController {
	return &LoginController{api: api, geo: geo, sessions: sessions}
}

// SetCredential replaces the entered credential. Fields stay editable across
// rejections so the user can correct and retry.
func (c *LoginController) SetCredential(email, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.email = email
	c.password = password
}

// Email returns the entered email, preserved across failed attempts.
func (c *LoginController) Email() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.email
}

// Submit runs one primary login attempt. The context lookup always precedes
// the authentication request and is never retried mid-flow; its failure
// degrades to an empty context. The returned result is the typed verdict:
//
//   - Authenticated: the token is already in the session store.
//   - StepUpRequired: hand result.Challenge to NewStepUpController.
//   - Rejected: generic invalid-credential failure, credential still editable.
func (c *LoginController) Submit(ctx context.Context) (LoginResult, error) {
	c.mu.Lock()
	if c.email == "" || c.password == "" {
		c.mu.Unlock()
		return LoginResult{}, ErrDraftIncomplete
	}
	if c.inFlight {
		c.mu.Unlock()
		return LoginResult{}, ErrRequestInFlight
	}
	c.inFlight = true
	email, password := c.email, c.password
	c.mu.Unlock()

	clientContext := c.geo.Lookup(ctx)
	result := c.api.Login(ctx, email, password, clientContext)

	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()

	if result.Outcome == OutcomeAuthenticated {
		if err := c.sessions.Set(result.Token); err != nil {
			return LoginResult{}, err
		}
	}

	return result, nil
}
