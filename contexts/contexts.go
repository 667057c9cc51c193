package contexts

import (
	"genolens/api/models"
	"genolens/api/services/dashboard"
	"genolens/api/services/generative"
	"genolens/api/services/insights"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

type (
	// "Helper" Context to pass into routes that need
	//  the configuration and the global singletons
	GenolensContext struct {
		echo.Context
		Config    *models.Config
		Log       *zap.Logger
		Dashboard *dashboard.Controller
		Generator generative.Generator
		Catalog   *insights.Catalog
		Sampler   *insights.Sampler

		// set by the upload middleware
		UploadedFile models.GenomicFile
	}
)

var _ echo.Context = (*GenolensContext)(nil)
