package uploadPhase

import "genolens/api/models/constants"

const (
	Idle      constants.UploadPhase = "Idle"
	Dragging  constants.UploadPhase = "Dragging"
	Uploading constants.UploadPhase = "Uploading"
	Uploaded  constants.UploadPhase = "Uploaded"
)
