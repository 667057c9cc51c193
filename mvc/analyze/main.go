package analyze

import (
	"net/http"

	"genolens/api/contexts"
	"genolens/api/models/dtos"
	"genolens/api/services/generative"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

const (
	MissingApiKeyMessage     = "Missing Gemini API key. Please set GEMINI_API_KEY in Edge Function secrets."
	MissingGenomicData       = "Genomic data is required"
	InvalidRequestBody       = "Invalid request body"
	InternalServerErrMessage = "Internal server error"
)

/*
GeminiAnalyze is the remote analysis function: it wraps a sample of the posted
genomic data in the assistant prompt and returns the generated text as
`analysisResults`. Failures are reported as `{error}`.
*/
func GeminiAnalyze(c echo.Context) error {
	gc := c.(*contexts.GenolensContext)

	// verify the generative backend is wired
	if gc.Generator == nil {
		return c.JSON(http.StatusInternalServerError, dtos.AnalyzeErrorDto{Error: MissingApiKeyMessage})
	}

	var requestDto dtos.AnalyzeRequestDto
	if err := c.Bind(&requestDto); err != nil {
		return c.JSON(http.StatusBadRequest, dtos.AnalyzeErrorDto{Error: InvalidRequestBody})
	}
	if err := c.Validate(&requestDto); err != nil {
		return c.JSON(http.StatusBadRequest, dtos.AnalyzeErrorDto{Error: MissingGenomicData})
	}

	prompt := generative.BuildPrompt(requestDto.GenomicData, requestDto.Prompt, gc.Config.Gemini.SampleChars)

	analysisResults, err := gc.Generator.Generate(c.Request().Context(), prompt)
	if err != nil {
		gc.Log.Error("Error processing analysis request", zap.Error(err))

		message := err.Error()
		if message == "" {
			message = InternalServerErrMessage
		}
		return c.JSON(http.StatusInternalServerError, dtos.AnalyzeErrorDto{Error: message})
	}

	return c.JSON(http.StatusOK, dtos.AnalyzeResponseDto{AnalysisResults: analysisResults})
}
