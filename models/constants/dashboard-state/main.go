package dashboardState

import "genolens/api/models/constants"

const (
	NoFile           constants.DashboardState = "NoFile"
	FileUploaded     constants.DashboardState = "FileUploaded"
	Analyzing        constants.DashboardState = "Analyzing"
	AnalysisComplete constants.DashboardState = "AnalysisComplete"
)

const (
	CannedMode constants.DashboardMode = "canned"
	LiveMode   constants.DashboardMode = "live"
)

func CastToMode(text string) constants.DashboardMode {
	if text == string(LiveMode) {
		return LiveMode
	}
	return CannedMode
}
