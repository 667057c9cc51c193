package priority

import (
	"genolens/api/models/constants"
	"strings"
)

const (
	High   constants.Priority = "high"
	Medium constants.Priority = "medium"
	Low    constants.Priority = "low"
	Info   constants.Priority = "info"
)

// keyword rules, checked in this exact order; first hit wins
var rules = []struct {
	priority constants.Priority
	keywords []string
}{
	{High, []string{"high risk", "urgent", "important"}},
	{Medium, []string{"medium risk", "moderate", "consider"}},
	{Low, []string{"low risk", "minimal", "minor"}},
}

func FromLine(line string) constants.Priority {
	lowered := strings.ToLower(line)
	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.priority
			}
		}
	}
	return Info
}

func CastToPriority(text string) constants.Priority {
	switch strings.ToLower(text) {
	case "high":
		return High
	case "medium":
		return Medium
	case "low":
		return Low
	default:
		return Info
	}
}
