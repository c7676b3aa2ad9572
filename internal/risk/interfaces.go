package risk

import (
	"context"

	"github.com/riskgate/riskgate/internal/models"
)

// Prediction is the scorer's verdict on a login attempt plus the rewritten
// per-user profile that must be persisted before the next attempt.
type Prediction struct {
	Score   float64
	Profile string
}

// IPredictor is the boundary to the external risk-scoring service. The score
// model, its features and thresholds live entirely on the other side.
type IPredictor interface {
	// Predict scores a login attempt from the client context and the user's
	// stored profile.
	Predict(ctx context.Context, email string, clientContext models.ClientContext, profile string) (Prediction, error)

	// Learn feeds a confirmed-legitimate observation back to the model after a
	// successful step-up, returning the updated profile.
	Learn(ctx context.Context, email string, clientContext models.ClientContext, profile string) (string, error)
}
