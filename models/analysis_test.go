package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAnalysisResult(t *testing.T) {
	ok := NewAnalysisResult("Health: low risk of something")
	assert.True(t, ok.Succeeded)
	assert.Equal(t, NoError, ok.ErrorKind)

	failed := NewAnalysisResult("Error analyzing genomic data: boom")
	assert.False(t, failed.Succeeded)
	assert.Equal(t, TransportError, failed.ErrorKind)

	warning := NewAnalysisResult("⚠️ Configuration required")
	assert.False(t, warning.Succeeded)

	assert.False(t, NewAnalysisResult("An unknown error occurred during genomic analysis").Succeeded)
}

func TestIsAnalysisErrorText(t *testing.T) {
	assert.False(t, IsAnalysisErrorText(""))
	assert.False(t, IsAnalysisErrorText("errors are lower case here"))
	assert.True(t, IsAnalysisErrorText("Error"))
}
