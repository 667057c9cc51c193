package dashboard

import (
	"errors"
	"net/http"

	"genolens/api/contexts"
	"genolens/api/models/dtos"
	errorsDtos "genolens/api/models/dtos/errors"
	dashboardService "genolens/api/services/dashboard"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

func GetDashboard(c echo.Context) error {
	gc := c.(*contexts.GenolensContext)
	return c.JSON(http.StatusOK, gc.Dashboard.Snapshot())
}

// UploadFile expects the upload middleware to have buffered the multipart file.
func UploadFile(c echo.Context) error {
	gc := c.(*contexts.GenolensContext)
	if gc.UploadedFile == nil {
		return c.JSON(http.StatusBadRequest, errorsDtos.CreateSimpleBadRequest("missing file"))
	}

	if _, err := gc.Dashboard.BeginUpload(gc.UploadedFile); err != nil {
		return respondWithError(gc, err)
	}

	return c.JSON(http.StatusAccepted, gc.Dashboard.Snapshot())
}

func StartAnalysis(c echo.Context) error {
	gc := c.(*contexts.GenolensContext)

	if _, err := gc.Dashboard.StartAnalysis(); err != nil {
		return respondWithError(gc, err)
	}

	return c.JSON(http.StatusAccepted, gc.Dashboard.Snapshot())
}

func CancelAnalysis(c echo.Context) error {
	gc := c.(*contexts.GenolensContext)

	if err := gc.Dashboard.CancelAnalysis(); err != nil {
		return respondWithError(gc, err)
	}

	return c.JSON(http.StatusOK, gc.Dashboard.Snapshot())
}

func Refresh(c echo.Context) error {
	gc := c.(*contexts.GenolensContext)

	if err := gc.Dashboard.Refresh(); err != nil {
		return respondWithError(gc, err)
	}

	return c.JSON(http.StatusOK, gc.Dashboard.Snapshot())
}

func Reset(c echo.Context) error {
	gc := c.(*contexts.GenolensContext)

	gc.Dashboard.Reset()

	return c.JSON(http.StatusOK, gc.Dashboard.Snapshot())
}

func GetNotifications(c echo.Context) error {
	gc := c.(*contexts.GenolensContext)

	notifications := gc.Dashboard.DrainNotifications()

	return c.JSON(http.StatusOK, dtos.NotificationsDto{
		Count:         len(notifications),
		Notifications: notifications,
	})
}

// - helpers
func respondWithError(gc *contexts.GenolensContext, err error) error {
	switch {
	case errors.Is(err, dashboardService.ErrNotReady),
		errors.Is(err, dashboardService.ErrAnalysisInProgress),
		errors.Is(err, dashboardService.ErrNotComplete),
		errors.Is(err, dashboardService.ErrNoAnalysis):
		return gc.JSON(http.StatusConflict, errorsDtos.CreateSimpleConflict(err.Error()))
	default:
		gc.Log.Error("Dashboard operation failed", zap.Error(err))
		return gc.JSON(http.StatusInternalServerError, errorsDtos.CreateSimpleInternalServerError(err.Error()))
	}
}
