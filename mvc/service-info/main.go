package serviceInfo

import (
	"net/http"

	"genolens/api/contexts"
	serviceInfo "genolens/api/models/constants/service-info"

	"github.com/labstack/echo"
)

func GetWelcome(c echo.Context) error {
	return c.JSON(http.StatusOK, serviceInfo.SERVICE_WELCOME)
}

// Spec: https://github.com/ga4gh-discovery/ga4gh-service-info
func GetServiceInfo(c echo.Context) error {
	gc := c.(*contexts.GenolensContext)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type": map[string]interface{}{
			"artifact": serviceInfo.SERVICE_ARTIFACT,
			"group":    serviceInfo.SERVICE_TYPE_NO_VER,
			"version":  gc.Config.SemVer,
		},
		"id":          serviceInfo.SERVICE_ID,
		"name":        serviceInfo.SERVICE_NAME,
		"description": serviceInfo.SERVICE_DESCRIPTION,
		"organization": map[string]string{
			"name": "Genolens",
			"url":  "https://genolens.io",
		},
		"contactUrl": gc.Config.ServiceContact,
		"version":    gc.Config.SemVer,
		"genolens": map[string]interface{}{
			"dashboardMode": gc.Dashboard.Mode(),
			"analysisReady": gc.Generator != nil,
		},
	})
}
