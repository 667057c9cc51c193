package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, "Health", Label(Health))
	assert.Equal(t, "Recommendations", Label(Recommendations))
	assert.Equal(t, "", Label(Unknown))
}

func TestCastToCategory(t *testing.T) {
	assert.Equal(t, Genetic, CastToCategory("Genetic"))
	assert.Equal(t, Medication, CastToCategory("MEDICATION"))
	assert.Equal(t, Unknown, CastToCategory("ancestry"))
}

func TestSecondaryKeyword(t *testing.T) {
	keyword, ok := SecondaryKeyword(Health)
	assert.True(t, ok)
	assert.Equal(t, "risk", keyword)

	keyword, ok = SecondaryKeyword("Recommendations")
	assert.True(t, ok)
	assert.Equal(t, "suggest", keyword)

	_, ok = SecondaryKeyword(Genetic)
	assert.False(t, ok)
}

func TestIsCanned(t *testing.T) {
	assert.True(t, IsCanned(Lifestyle))
	assert.False(t, IsCanned(Health))
}
