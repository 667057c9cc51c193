package notificationLevel

import "genolens/api/models/constants"

const (
	Success constants.NotificationLevel = "success"
	Info    constants.NotificationLevel = "info"
	Warning constants.NotificationLevel = "warning"
	Error   constants.NotificationLevel = "error"
)
