package risk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/riskgate/riskgate/internal/models"

	"github.com/go-resty/resty/v2"
)

type predictRequest struct {
	UserEmail  string               `json:"user_email"`
	Data       models.ClientContext `json:"data"`
	UserMLData json.RawMessage      `json:"user_ml_data"`
}

type learnRequest struct {
	UserEmail  string               `json:"user_email"`
	Data       models.ClientContext `json:"data"`
	UserMLData json.RawMessage      `json:"user_ml_data"`
	Target     []int                `json:"target"`
}

type predictResponse struct {
	Prediction float64         `json:"prediction"`
	UserMLData json.RawMessage `json:"user_ml_data"`
}

type learnResponse struct {
	UserMLData json.RawMessage `json:"user_ml_data"`
}

// HTTPPredictor talks to the scoring service over its JSON API.
type HTTPPredictor struct {
	client     *resty.Client
	predictURL string
	learnURL   string
}

func NewHTTPPredictor(config models.RiskConfiguration) *HTTPPredictor {
	client := resty.New().
		SetTimeout(time.Duration(config.TimeoutSeconds) * time.Second).
		SetHeader("Content-Type", "application/json")

	return &HTTPPredictor{
		client:     client,
		predictURL: config.PredictURL,
		learnURL:   config.LearnURL,
	}
}

func normalizeProfile(profile string) json.RawMessage {
	if profile == "" || !json.Valid([]byte(profile)) {
		return json.RawMessage("{}")
	}
	return json.RawMessage(profile)
}

func (p *HTTPPredictor) Predict(
	ctx context.Context,
	email string,
	clientContext models.ClientContext,
	profile string,
) (Prediction, error) {
	var result predictResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(predictRequest{
			UserEmail:  email,
			Data:       clientContext,
			UserMLData: normalizeProfile(profile),
		}).
		SetResult(&result).
		Post(p.predictURL)
	if err != nil {
		return Prediction{}, fmt.Errorf("risk predict call failed: %w", err)
	}
	if !resp.IsSuccess() {
		return Prediction{}, fmt.Errorf("risk predict returned status %d", resp.StatusCode())
	}
	if result.UserMLData == nil {
		return Prediction{}, fmt.Errorf("risk predict response missing user profile")
	}

	return Prediction{Score: result.Prediction, Profile: string(result.UserMLData)}, nil
}

func (p *HTTPPredictor) Learn(
	ctx context.Context,
	email string,
	clientContext models.ClientContext,
	profile string,
) (string, error) {
	var result learnResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(learnRequest{
			UserEmail:  email,
			Data:       clientContext,
			UserMLData: normalizeProfile(profile),
			// A completed step-up proves the login was legitimate, so the
			// observation is labeled normal.
			Target: []int{0},
		}).
		SetResult(&result).
		Post(p.learnURL)
	if err != nil {
		return "", fmt.Errorf("risk learn call failed: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("risk learn returned status %d", resp.StatusCode())
	}
	if result.UserMLData == nil {
		return "", fmt.Errorf("risk learn response missing user profile")
	}

	return string(result.UserMLData), nil
}

var _ IPredictor = (*HTTPPredictor)(nil)
