package generative

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"genolens/api/models"
	"genolens/api/utils"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultPrompt      = "Analyze the following genomic data and provide insights on health risks, traits, and recommendations."
	NoAnalysisFallback = "No analysis could be generated from the genomic data."
)

type (
	// Generator turns a single text prompt into free text.
	Generator interface {
		Generate(ctx context.Context, prompt string) (string, error)
	}

	GeminiService struct {
		client     *genai.Client
		model      string
		maxRetries int
		logger     *zap.Logger
	}
)

func NewGeminiService(ctx context.Context, cfg *models.Config, logger *zap.Logger) (*GeminiService, error) {
	client, err := utils.CreateGenaiClient(ctx, cfg, &http.Client{Timeout: cfg.Analysis.Timeout})
	if err != nil {
		return nil, err
	}

	return &GeminiService{
		client:     client,
		model:      cfg.Gemini.Model,
		maxRetries: cfg.Gemini.MaxRetries,
		logger:     logger,
	}, nil
}

func GenerationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.2),
		TopP:            genai.Ptr[float32](0.8),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 2048,
	}
}

/*
BuildPrompt wraps a sample of the genomic data in the assistant prompt.
Data longer than sampleChars is cut and suffixed with "...".
*/
func BuildPrompt(genomicData string, prompt string, sampleChars int) string {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt
	}
	sample := utils.SampleWithEllipsis(genomicData, sampleChars)

	return fmt.Sprintf("You are a genomic analysis assistant.\n%s\n\nHere is a sample of the genomic data: %s", prompt, sample)
}

func (g *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	retryBackoff := utils.NewRetryBackOff()

	for attempt := 0; ; attempt++ {
		text, err := g.generateOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}

		if !isRetryable(err) || attempt >= g.maxRetries {
			return "", err
		}

		wait := retryBackoff.NextBackOff()
		if wait == backoff.Stop {
			return "", err
		}
		g.logger.Warn("Retrying generative backend call",
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (g *GeminiService) generateOnce(ctx context.Context, prompt string) (string, error) {
	response, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), GenerationConfig())
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	return FirstCandidateText(response), nil
}

// FirstCandidateText returns the first candidate's first text part,
// or the fixed fallback when the response carries none.
func FirstCandidateText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 {
		return NoAnalysisFallback
	}
	candidate := response.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return NoAnalysisFallback
	}
	part := candidate.Content.Parts[0]
	if part == nil || part.Text == "" {
		return NoAnalysisFallback
	}
	return part.Text
}

func isRetryable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return utils.StatusInSlice(apiErr.Code, utils.RetryOnStatus)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return utils.StatusInSlice(apiErrPtr.Code, utils.RetryOnStatus)
	}
	return false
}
