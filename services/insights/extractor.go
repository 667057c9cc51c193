package insights

import (
	"fmt"
	"strings"

	"genolens/api/models"
	"genolens/api/models/constants"
	c "genolens/api/models/constants/category"
	p "genolens/api/models/constants/priority"
	"genolens/api/utils"
)

const (
	MaxTitleRunes       = 50
	MaxDescriptionRunes = 100

	PlaceholderDescription = "Insufficient data for detailed analysis in this category."
)

/*
Extract derives exactly `count` insights for a category out of free analysis text.

Lines are selected when they mention the category (case-insensitive) or the
category's secondary keyword; the first `count` selected lines become insights
and the remainder is backfilled with placeholders of priority info.
*/
func Extract(rawText string, category constants.Category, count int) []models.Insight {
	if count <= 0 {
		return []models.Insight{}
	}

	matched := matchLines(rawText, category)

	insights := make([]models.Insight, 0, count)
	for i := 0; i < count && i < len(matched); i++ {
		insights = append(insights, lineToInsight(matched[i], category, i+1))
	}

	for len(insights) < count {
		insights = append(insights, Placeholder(category))
	}

	return insights
}

func Placeholder(category constants.Category) models.Insight {
	return models.Insight{
		Title:       fmt.Sprintf("%s Analysis", c.Label(category)),
		Description: PlaceholderDescription,
		Priority:    p.Info,
	}
}

// BuildCollection runs Extract and wraps the result for display.
func BuildCollection(rawText string, category constants.Category, title string, count int) models.InsightCollection {
	return models.InsightCollection{
		Category: category,
		Title:    title,
		Insights: Extract(rawText, category, count),
	}
}

// - helpers
func matchLines(rawText string, category constants.Category) []string {
	if rawText == "" {
		return nil
	}

	keyword := strings.ToLower(string(category))
	secondary, hasSecondary := c.SecondaryKeyword(category)

	matched := []string{}
	for _, line := range utils.SplitLines(rawText) {
		lowered := strings.ToLower(line)
		if keyword != "" && strings.Contains(lowered, keyword) {
			matched = append(matched, line)
			continue
		}
		if hasSecondary && strings.Contains(lowered, secondary) {
			matched = append(matched, line)
		}
	}
	return matched
}

func lineToInsight(line string, category constants.Category, index int) models.Insight {
	head, tail, hasColon := strings.Cut(line, ":")

	title := utils.TruncateRunes(strings.TrimSpace(head), MaxTitleRunes)
	if title == "" {
		title = fmt.Sprintf("%s Insight %d", c.Label(category), index)
	}

	description := ""
	if hasColon {
		description = strings.TrimSpace(tail)
	}
	if description == "" {
		description = strings.TrimSpace(line)
	}
	description = utils.TruncateRunes(description, MaxDescriptionRunes)

	return models.Insight{
		Title:       title,
		Description: description,
		Priority:    p.FromLine(line),
	}
}
