package dashboard

import (
	"context"
	"errors"
	"time"

	"genolens/api/models"
	"genolens/api/models/constants"
	c "genolens/api/models/constants/category"
	dashboardState "genolens/api/models/constants/dashboard-state"
	"genolens/api/services/analysis"
	"genolens/api/services/insights"
)

var ErrAnalysisFailed = errors.New("analysis failed")

type (
	// Source produces the insight collections shown once an analysis completes.
	Source interface {
		Mode() constants.DashboardMode
		Analyze(ctx context.Context, request models.AnalysisRequest) (Outcome, error)
		Refresh(last Outcome) []models.InsightCollection
	}

	Outcome struct {
		Result      models.AnalysisResult
		Collections []models.InsightCollection
	}

	CannedSource struct {
		sampler *insights.Sampler
		delay   time.Duration
		count   int
	}

	LiveSource struct {
		analyzer analysis.Analyzer
		prompt   string
		count    int
	}
)

// -- canned

func NewCannedSource(sampler *insights.Sampler, delay time.Duration, insightsPerCategory int) *CannedSource {
	return &CannedSource{
		sampler: sampler,
		delay:   delay,
		count:   insightsPerCategory,
	}
}

func (s *CannedSource) Mode() constants.DashboardMode {
	return dashboardState.CannedMode
}

func (s *CannedSource) Analyze(ctx context.Context, request models.AnalysisRequest) (Outcome, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		}
	}

	return Outcome{Collections: s.sample()}, nil
}

func (s *CannedSource) Refresh(last Outcome) []models.InsightCollection {
	return s.sample()
}

func (s *CannedSource) sample() []models.InsightCollection {
	return insights.FitCollections(s.sampler.SampleOne(), s.count)
}

// -- live

func NewLiveSource(analyzer analysis.Analyzer, prompt string, insightsPerCategory int) *LiveSource {
	return &LiveSource{
		analyzer: analyzer,
		prompt:   prompt,
		count:    insightsPerCategory,
	}
}

func (s *LiveSource) Mode() constants.DashboardMode {
	return dashboardState.LiveMode
}

func (s *LiveSource) Analyze(ctx context.Context, request models.AnalysisRequest) (Outcome, error) {
	prompt := request.Prompt
	if prompt == "" {
		prompt = s.prompt
	}

	result := s.analyzer.Analyze(ctx, request.ContentSample, prompt)
	if !result.Succeeded {
		return Outcome{Result: result}, ErrAnalysisFailed
	}

	return Outcome{
		Result:      result,
		Collections: s.derive(result.RawText),
	}, nil
}

// Refresh re-derives from the last successful result; the remote call is not repeated.
func (s *LiveSource) Refresh(last Outcome) []models.InsightCollection {
	return s.derive(last.Result.RawText)
}

func (s *LiveSource) derive(rawText string) []models.InsightCollection {
	collections := make([]models.InsightCollection, 0, len(c.LiveCategories))
	for _, category := range c.LiveCategories {
		collections = append(collections,
			insights.BuildCollection(rawText, category, c.Label(category)+" Insights", s.count))
	}
	return collections
}
