package category

import (
	"genolens/api/models/constants"
	"strings"
)

const (
	// canned-data categories
	Genetic    constants.Category = "genetic"
	Prediction constants.Category = "prediction"
	Medical    constants.Category = "medical"
	Lifestyle  constants.Category = "lifestyle"

	// live-analysis categories
	Health          constants.Category = "health"
	Recommendations constants.Category = "recommendations"
	Medication      constants.Category = "medication"

	Unknown constants.Category = ""
)

var (
	CannedCategories = []constants.Category{Genetic, Prediction, Medical, Lifestyle}
	LiveCategories   = []constants.Category{Health, Recommendations, Medication}
)

// Secondary keywords that also select a line for a live category.
var secondaryKeywords = map[constants.Category]string{
	Health:          "risk",
	Recommendations: "suggest",
	Medication:      "drug",
}

func SecondaryKeyword(cat constants.Category) (string, bool) {
	keyword, ok := secondaryKeywords[constants.Category(strings.ToLower(string(cat)))]
	return keyword, ok
}

// Label capitalizes the category for display, e.g. "health" -> "Health".
func Label(cat constants.Category) string {
	s := string(cat)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func CastToCategory(text string) constants.Category {
	lowered := constants.Category(strings.ToLower(text))
	for _, c := range append(CannedCategories, LiveCategories...) {
		if c == lowered {
			return c
		}
	}
	return Unknown
}

func IsCanned(cat constants.Category) bool {
	for _, c := range CannedCategories {
		if c == cat {
			return true
		}
	}
	return false
}
