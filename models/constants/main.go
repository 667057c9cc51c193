package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout genolens and it's
	associated services.
*/
type FileKind string
type Priority string
type Category string
type UploadPhase string
type DashboardState string
type DashboardMode string
type NotificationLevel string
type AnalysisErrorKind string
