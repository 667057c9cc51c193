package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", TruncateRunes("abcdef", 3))
	assert.Equal(t, "abc", TruncateRunes("abc", 10))
	assert.Equal(t, "", TruncateRunes("abc", 0))
	assert.Equal(t, "héé", TruncateRunes("hééllo", 3))
}

func TestSampleWithEllipsis(t *testing.T) {
	assert.Equal(t, "abc...", SampleWithEllipsis("abcdef", 3))
	assert.Equal(t, "abc", SampleWithEllipsis("abc", 3))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, SplitLines("a\r\nb\n"))
	assert.Equal(t, []string{""}, SplitLines(""))
}

func TestStringInSlice(t *testing.T) {
	assert.True(t, StringInSlice("b", []string{"a", "b"}))
	assert.False(t, StringInSlice("c", []string{"a", "b"}))
}

func TestStatusInSlice(t *testing.T) {
	assert.True(t, StatusInSlice(503, RetryOnStatus))
	assert.True(t, StatusInSlice(429, RetryOnStatus))
	assert.False(t, StatusInSlice(400, RetryOnStatus))
}
