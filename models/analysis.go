package models

import (
	"genolens/api/models/constants"
	"strings"
)

const (
	ConfigurationError constants.AnalysisErrorKind = "configuration"
	TransportError     constants.AnalysisErrorKind = "transport"
	ValidationError    constants.AnalysisErrorKind = "validation"
	NoError            constants.AnalysisErrorKind = ""
)

// Prefixes that mark a raw analysis text as a failure.
var AnalysisErrorMarkers = []string{"Error", "⚠", "An unknown error"}

type AnalysisRequest struct {
	ContentSample string `json:"contentSample"`
	Prompt        string `json:"prompt"`
}

type AnalysisResult struct {
	RawText   string                      `json:"rawText"`
	Succeeded bool                        `json:"succeeded"`
	ErrorKind constants.AnalysisErrorKind `json:"errorKind,omitempty"`
}

func NewAnalysisResult(rawText string) AnalysisResult {
	succeeded := !IsAnalysisErrorText(rawText)
	kind := NoError
	if !succeeded {
		kind = TransportError
	}
	return AnalysisResult{RawText: rawText, Succeeded: succeeded, ErrorKind: kind}
}

func NewFailedAnalysisResult(kind constants.AnalysisErrorKind, rawText string) AnalysisResult {
	return AnalysisResult{RawText: rawText, Succeeded: false, ErrorKind: kind}
}

func IsAnalysisErrorText(rawText string) bool {
	for _, marker := range AnalysisErrorMarkers {
		if strings.HasPrefix(rawText, marker) {
			return true
		}
	}
	return false
}
