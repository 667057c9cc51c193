package priority

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromLine(t *testing.T) {
	assert.Equal(t, High, FromLine("HIGH RISK of something"))
	assert.Equal(t, High, FromLine("This is important"))
	assert.Equal(t, Medium, FromLine("consider more sleep"))
	assert.Equal(t, Medium, FromLine("Moderate impact"))
	assert.Equal(t, Low, FromLine("minor variant"))
	assert.Equal(t, Low, FromLine("Low risk overall"))
	assert.Equal(t, Info, FromLine("Suggest more tests"))
	assert.Equal(t, Info, FromLine(""))
}

func TestFromLine_FixedPrecedence(t *testing.T) {
	// several rules match; the earlier rule wins
	assert.Equal(t, High, FromLine("low risk but urgent"))
	assert.Equal(t, High, FromLine("minor but important"))
	assert.Equal(t, Medium, FromLine("minimal, consider it"))
}

func TestCastToPriority(t *testing.T) {
	assert.Equal(t, High, CastToPriority("HIGH"))
	assert.Equal(t, Medium, CastToPriority("medium"))
	assert.Equal(t, Low, CastToPriority("Low"))
	assert.Equal(t, Info, CastToPriority("whatever"))
}
