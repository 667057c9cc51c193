package dashboard

import (
	"fmt"
	"time"

	"genolens/api/models"
	"genolens/api/models/constants"
	notificationLevel "genolens/api/models/constants/notification-level"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bounded so an unattended dashboard does not grow without limit
const maxPendingNotifications = 64

// must hold the controller mutex
func (ctrl *Controller) notify(level constants.NotificationLevel, title string, description string) {
	n := models.Notification{
		Id:          uuid.New(),
		Level:       level,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	ctrl.logger.Info("Dashboard notification",
		zap.String("level", string(level)),
		zap.String("title", title),
		zap.String("description", description))

	ctrl.notifications = append(ctrl.notifications, n)
	if overflow := len(ctrl.notifications) - maxPendingNotifications; overflow > 0 {
		ctrl.notifications = append([]models.Notification(nil), ctrl.notifications[overflow:]...)
	}
}

func (ctrl *Controller) notifyUploadComplete(kind constants.FileKind) {
	ctrl.notify(notificationLevel.Success, "Genomic data uploaded successfully",
		fmt.Sprintf("Your %s file has been processed and is ready for analysis.", kind))
}

func (ctrl *Controller) notifyUnrecognizedFormat(fileName string) {
	ctrl.notify(notificationLevel.Warning, "Unrecognized file format",
		fmt.Sprintf("%s does not look like a known genomic format; analysis will proceed anyway.", fileName))
}

func (ctrl *Controller) notifyUploadFailed(err error) {
	ctrl.notify(notificationLevel.Error, "Upload failed", err.Error())
}

func (ctrl *Controller) notifyAnalysisStarted() {
	ctrl.notify(notificationLevel.Info, "Analysis started",
		"Your genomic data is being processed by our AI engine")
}

func (ctrl *Controller) notifyAnalysisComplete() {
	ctrl.notify(notificationLevel.Success, "Analysis complete",
		"Your genomic insights are now available")
}

func (ctrl *Controller) notifyAnalysisFailed(message string) {
	ctrl.notify(notificationLevel.Error, "Analysis failed", message)
}

func (ctrl *Controller) notifyAnalysisCancelled() {
	ctrl.notify(notificationLevel.Info, "Analysis cancelled",
		"Your file is still loaded and ready for analysis")
}

func (ctrl *Controller) notifyRefresh() {
	ctrl.notify(notificationLevel.Info, "Refreshing data...",
		"Updating your insights with the latest analysis")
}

func (ctrl *Controller) notifyReset() {
	ctrl.notify(notificationLevel.Info, "Ready for new data",
		"You can now upload a different genomic data file")
}
