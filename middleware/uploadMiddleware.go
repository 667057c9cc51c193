package middleware

import (
	"fmt"
	"io"
	"net/http"

	"genolens/api/contexts"
	"genolens/api/models"
	fileKind "genolens/api/models/constants/file-kind"
	"genolens/api/models/dtos/errors"

	"github.com/labstack/echo"
	echoMiddleware "github.com/labstack/echo/middleware"
	"go.uber.org/zap"
)

// room for multipart boundaries and part headers around the file itself
const multipartOverheadBytes = 64 * 1024

/*
LimitUploadBody caps the raw request body before the multipart form is
parsed; the exact per-file limit is still enforced by
MandateGenomicFileUpload. A non-positive limit disables the cap.
*/
func LimitUploadBody(maxUploadBytes int64) echo.MiddlewareFunc {
	if maxUploadBytes <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return echoMiddleware.BodyLimit(fmt.Sprintf("%dB", maxUploadBytes+multipartOverheadBytes))
}

/*
Echo middleware to ensure a genomic file was posted as the multipart `file`
field, with an accepted extension and within the configured size limit
*/
func MandateGenomicFileUpload(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.GenolensContext)

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("missing multipart file field 'file'"))
		}

		if !fileKind.IsAcceptedFileName(fileHeader.Filename) {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(
				fmt.Sprintf("unsupported file %s - accepted extensions are %v", fileHeader.Filename, fileKind.AcceptedExtensions)))
		}

		maxBytes := gc.Config.Api.MaxUploadBytes
		if maxBytes > 0 && fileHeader.Size > maxBytes {
			return c.JSON(http.StatusRequestEntityTooLarge, errors.CreateSimpleRequestEntityTooLarge(
				fmt.Sprintf("file %s exceeds the %d byte limit", fileHeader.Filename, maxBytes)))
		}

		src, err := fileHeader.Open()
		if err != nil {
			gc.Log.Error("Error opening multipart file", zap.String("file", fileHeader.Filename), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, errors.CreateSimpleInternalServerError("could not read uploaded file"))
		}
		defer src.Close()

		// the multipart temp file does not outlive the request
		data, err := io.ReadAll(src)
		if err != nil {
			gc.Log.Error("Error reading multipart file", zap.String("file", fileHeader.Filename), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, errors.CreateSimpleInternalServerError("could not read uploaded file"))
		}

		// forward a type-safe value down the pipeline
		gc.UploadedFile = models.NewInMemoryFile(fileHeader.Filename, data)

		return next(gc)
	}
}
