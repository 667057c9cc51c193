package models

import "genolens/api/models/constants"

type Insight struct {
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description" yaml:"description"`
	Priority    constants.Priority `json:"priority" yaml:"priority"`
}

type InsightCollection struct {
	Category constants.Category `json:"category" yaml:"category"`
	Title    string             `json:"title" yaml:"title"`
	Insights []Insight          `json:"insights" yaml:"insights"`
}
