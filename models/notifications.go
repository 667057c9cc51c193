package models

import (
	"genolens/api/models/constants"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	Id          uuid.UUID                   `json:"id"`
	Level       constants.NotificationLevel `json:"level"`
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	CreatedAt   time.Time                   `json:"createdAt"`
}
