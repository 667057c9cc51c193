package utils

import (
	"context"
	"errors"
	"net/http"
	"time"

	"genolens/api/models"

	"github.com/cenkalti/backoff"
	"google.golang.org/genai"
)

var ErrMissingGeminiApiKey = errors.New("missing Gemini API key")

// statuses worth another attempt against the generative backend
var RetryOnStatus = []int{429, 500, 502, 503, 504}

func CreateGenaiClient(ctx context.Context, cfg *models.Config, httpClient *http.Client) (*genai.Client, error) {
	if cfg.Gemini.ApiKey == "" {
		return nil, ErrMissingGeminiApiKey
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.Gemini.ApiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.Gemini.BaseUrl != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Gemini.BaseUrl}
	}

	return genai.NewClient(ctx, clientCfg)
}

// NewRetryBackOff returns the exponential policy used between
// generative backend attempts.
func NewRetryBackOff() *backoff.ExponentialBackOff {
	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.InitialInterval = 250 * time.Millisecond
	retryBackoff.MaxInterval = 4 * time.Second
	retryBackoff.MaxElapsedTime = 30 * time.Second
	retryBackoff.Reset()
	return retryBackoff
}
