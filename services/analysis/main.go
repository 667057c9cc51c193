package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"genolens/api/models"
	"genolens/api/models/dtos"

	"github.com/Jeffail/gabs"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	DefaultPrompt = "Analyze this genomic data and provide insights on health risks, traits, and recommendations."

	ConfigurationWarning = "⚠️ Configuration required: the analysis backend connection is not configured. " +
		"Set GENOLENS_SUPABASE_URL and GENOLENS_SUPABASE_ANON_KEY and restart the service."

	errorPrefix = "Error analyzing genomic data: "
)

var (
	ErrEmptyGenomicData   = errors.New("genomic data is required")
	ErrMissingResults     = errors.New("response did not contain analysis results")
	ErrUnparsableResponse = errors.New("response could not be parsed")
)

type (
	// Analyzer is satisfied by the Client; the dashboard depends on this.
	Analyzer interface {
		Analyze(ctx context.Context, content string, prompt string) models.AnalysisResult
	}

	Client struct {
		projectUrl   string
		accessKey    string
		functionName string
		httpClient   *http.Client
		logger       *zap.Logger
	}
)

func NewClient(cfg *models.Config, logger *zap.Logger) *Client {
	return &Client{
		projectUrl:   strings.TrimRight(cfg.Analysis.ProjectUrl, "/"),
		accessKey:    cfg.Analysis.AnonKey,
		functionName: cfg.Analysis.FunctionName,
		httpClient:   &http.Client{Timeout: cfg.Analysis.Timeout},
		logger:       logger,
	}
}

func (c *Client) IsConfigured() bool {
	return c.projectUrl != "" && c.accessKey != ""
}

func (c *Client) FunctionUrl() string {
	return fmt.Sprintf("%s/functions/v1/%s", c.projectUrl, c.functionName)
}

/*
Analyze forwards the content and prompt to the remote analysis function.
It never returns an error: configuration problems, validation problems and
transport failures all come back as an AnalysisResult with Succeeded=false.
*/
func (c *Client) Analyze(ctx context.Context, content string, prompt string) models.AnalysisResult {
	if !c.IsConfigured() {
		c.logger.Warn("Analysis backend is not configured; skipping remote call")
		return models.NewFailedAnalysisResult(models.ConfigurationError, ConfigurationWarning)
	}

	if strings.TrimSpace(content) == "" {
		return models.NewFailedAnalysisResult(models.ValidationError, errorPrefix+ErrEmptyGenomicData.Error())
	}

	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt
	}

	analysisResults, err := c.invoke(ctx, dtos.AnalyzeRequestDto{GenomicData: content, Prompt: prompt})
	if err != nil {
		c.logger.Error("Error calling the analysis function", zap.String("url", c.FunctionUrl()), zap.Error(err))
		return models.NewFailedAnalysisResult(models.TransportError,
			fmt.Sprintf("%sFailed to analyze genomic data: %s", errorPrefix, err.Error()))
	}

	return models.NewAnalysisResult(analysisResults)
}

func (c *Client) invoke(ctx context.Context, requestDto dtos.AnalyzeRequestDto) (string, error) {
	requestJson, err := json.Marshal(&requestDto)
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.FunctionUrl(), bytes.NewBuffer(requestJson))
	if err != nil {
		return "", err
	}
	request.Header.Add("Authorization", "Bearer "+c.accessKey)
	request.Header.Add("apikey", c.accessKey)
	request.Header.Add("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	jsonParsed, parseErr := gabs.ParseJSON(responseBody)

	// check http status code
	if response.StatusCode < 200 || response.StatusCode > 299 {
		if parseErr == nil {
			if message, ok := jsonParsed.Path("error").Data().(string); ok && message != "" {
				return "", errors.New(message)
			}
		}
		return "", fmt.Errorf("analysis function returned status %d", response.StatusCode)
	}

	if parseErr != nil {
		return "", fmt.Errorf("%w: %s", ErrUnparsableResponse, parseErr.Error())
	}
	if !jsonParsed.Exists("analysisResults") {
		return "", ErrMissingResults
	}

	var responseDto dtos.AnalyzeResponseDto
	if err := mapstructure.Decode(jsonParsed.Data(), &responseDto); err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnparsableResponse, err.Error())
	}

	return responseDto.AnalysisResults, nil
}
