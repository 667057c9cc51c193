package dashboard

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"genolens/api/contexts"
	gam "genolens/api/middleware"
	"genolens/api/models"
	dashboardState "genolens/api/models/constants/dashboard-state"
	"genolens/api/models/dtos"
	dashboardService "genolens/api/services/dashboard"
	"genolens/api/services/insights"
	"genolens/api/services/upload"
	"genolens/api/tests/common"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDashboard(t *testing.T, cfg *models.Config) *dashboardService.Controller {
	t.Helper()

	catalog, err := insights.LoadCatalog()
	require.NoError(t, err)

	return dashboardService.NewController(cfg,
		upload.NewSimulator(cfg.Upload.TickInterval, zap.NewNop()),
		dashboardService.NewCannedSource(insights.NewSampler(catalog, cfg.Dashboard.Seed), cfg.Dashboard.CannedDelay, cfg.Dashboard.InsightsPerCategory),
		zap.NewNop())
}

func multipartBody(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestDashboardRoutes(t *testing.T) {
	cfg := common.InitConfig()
	ctrl := newDashboard(t, cfg)

	setUpEcho := func(method string, path string, body *bytes.Buffer, contentType string) (*contexts.GenolensContext, *httptest.ResponseRecorder) {
		e := echo.New()
		var req *http.Request
		if body != nil {
			req = httptest.NewRequest(method, path, body)
			req.Header.Set(echo.HeaderContentType, contentType)
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		rec := httptest.NewRecorder()
		gc := &contexts.GenolensContext{
			Context:   e.NewContext(req, rec),
			Config:    cfg,
			Log:       zap.NewNop(),
			Dashboard: ctrl,
		}
		return gc, rec
	}

	getDashboard := func(t *testing.T, rec *httptest.ResponseRecorder) dtos.DashboardDto {
		var dashboardDto dtos.DashboardDto
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboardDto))
		return dashboardDto
	}

	eventuallyInState := func(t *testing.T, state string) {
		assert.Eventually(t, func() bool {
			return string(ctrl.Snapshot().State) == state
		}, 5*time.Second, 5*time.Millisecond)
	}

	t.Run("should start with no file", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodGet, "/dashboard", nil, "")

		require.NoError(t, GetDashboard(gc))

		assert.Equal(t, http.StatusOK, rec.Code)
		dashboardDto := getDashboard(t, rec)
		assert.Equal(t, dashboardState.NoFile, dashboardDto.State)
		assert.Equal(t, dashboardState.CannedMode, dashboardDto.Mode)
		assert.Nil(t, dashboardDto.Upload)
	})

	t.Run("should reject analysis before an upload", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodPost, "/dashboard/analysis", nil, "")

		require.NoError(t, StartAnalysis(gc))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should reject unsupported extensions", func(t *testing.T) {
		body, contentType := multipartBody(t, "report.pdf", []byte("%PDF"))
		gc, rec := setUpEcho(http.MethodPost, "/dashboard/upload", body, contentType)

		require.NoError(t, gam.MandateGenomicFileUpload(UploadFile)(gc))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject oversized files", func(t *testing.T) {
		body, contentType := multipartBody(t, "huge.vcf", bytes.Repeat([]byte("A"), int(cfg.Api.MaxUploadBytes)+1))
		gc, rec := setUpEcho(http.MethodPost, "/dashboard/upload", body, contentType)

		require.NoError(t, gam.MandateGenomicFileUpload(UploadFile)(gc))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("should reject an oversized body before parsing the form", func(t *testing.T) {
		body, contentType := multipartBody(t, "huge.vcf", bytes.Repeat([]byte("A"), int(cfg.Api.MaxUploadBytes)+128*1024))
		gc, rec := setUpEcho(http.MethodPost, "/dashboard/upload", body, contentType)

		reached := false
		err := gam.LimitUploadBody(cfg.Api.MaxUploadBytes)(gam.MandateGenomicFileUpload(func(c echo.Context) error {
			reached = true
			return UploadFile(c)
		}))(gc)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusRequestEntityTooLarge, httpErr.Code)
		assert.False(t, reached)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, dashboardState.NoFile, ctrl.Snapshot().State)
	})

	t.Run("should let a file within the limit through the body cap", func(t *testing.T) {
		body, contentType := multipartBody(t, "small.vcf", []byte("chr1"))
		gc, _ := setUpEcho(http.MethodPost, "/dashboard/upload", body, contentType)

		reached := false
		err := gam.LimitUploadBody(cfg.Api.MaxUploadBytes)(gam.MandateGenomicFileUpload(func(c echo.Context) error {
			reached = true
			return nil
		}))(gc)

		require.NoError(t, err)
		assert.True(t, reached)
	})

	t.Run("should reject a request without a file", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodPost, "/dashboard/upload", nil, "")

		require.NoError(t, gam.MandateGenomicFileUpload(UploadFile)(gc))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should upload, analyze, refresh and reset", func(t *testing.T) {
		body, contentType := multipartBody(t, "sample.vcf", []byte(strings.Repeat("chr1\t100\trs1\tA\tG\n", 10)))
		gc, rec := setUpEcho(http.MethodPost, "/dashboard/upload", body, contentType)

		require.NoError(t, gam.MandateGenomicFileUpload(UploadFile)(gc))
		assert.Equal(t, http.StatusAccepted, rec.Code)
		require.NotNil(t, getDashboard(t, rec).Upload)
		assert.Equal(t, "sample.vcf", getDashboard(t, rec).Upload.FileName)

		eventuallyInState(t, string(dashboardState.FileUploaded))

		gc, rec = setUpEcho(http.MethodPost, "/dashboard/analysis", nil, "")
		require.NoError(t, StartAnalysis(gc))
		assert.Equal(t, http.StatusAccepted, rec.Code)

		eventuallyInState(t, string(dashboardState.AnalysisComplete))

		gc, rec = setUpEcho(http.MethodPost, "/dashboard/refresh", nil, "")
		require.NoError(t, Refresh(gc))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, getDashboard(t, rec).Collections, 4)

		gc, rec = setUpEcho(http.MethodDelete, "/dashboard/analysis", nil, "")
		require.NoError(t, CancelAnalysis(gc))
		assert.Equal(t, http.StatusConflict, rec.Code)

		gc, rec = setUpEcho(http.MethodGet, "/dashboard/notifications", nil, "")
		require.NoError(t, GetNotifications(gc))
		var notificationsDto dtos.NotificationsDto
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notificationsDto))
		assert.Equal(t, 4, notificationsDto.Count)
		assert.Equal(t, "Refreshing data...", notificationsDto.Notifications[3].Title)

		gc, rec = setUpEcho(http.MethodPost, "/dashboard/reset", nil, "")
		require.NoError(t, Reset(gc))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, dashboardState.NoFile, getDashboard(t, rec).State)
	})
}
