package dtos

import (
	"genolens/api/models"
	"genolens/api/models/constants"
	"time"
)

// -- remote analysis function
type AnalyzeRequestDto struct {
	GenomicData string `json:"genomicData" validate:"required"`
	Prompt      string `json:"prompt"`
}
type AnalyzeResponseDto struct {
	AnalysisResults string `json:"analysisResults" mapstructure:"analysisResults"`
}
type AnalyzeErrorDto struct {
	Error string `json:"error" mapstructure:"error"`
}

// -- dashboard
type DashboardDto struct {
	State       constants.DashboardState   `json:"state"`
	Mode        constants.DashboardMode    `json:"mode"`
	Upload      *models.UploadState        `json:"upload,omitempty"`
	Collections []models.InsightCollection `json:"collections"`
	LastError   string                     `json:"lastError,omitempty"`
}

type NotificationsDto struct {
	Count         int                   `json:"count"`
	Notifications []models.Notification `json:"notifications"`
}

// -- canned insights browser
type InsightsResponseDto struct {
	Query       string                                          `json:"query,omitempty"`
	Collections map[constants.Category][]models.InsightCollection `json:"collections"`
}

// -- general errors
type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors"`
}
type GeneralError struct {
	Message string `json:"message"`
}
