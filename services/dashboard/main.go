package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"genolens/api/models"
	"genolens/api/models/constants"
	dashboardState "genolens/api/models/constants/dashboard-state"
	fileKind "genolens/api/models/constants/file-kind"
	uploadPhase "genolens/api/models/constants/upload-phase"
	"genolens/api/models/dtos"
	"genolens/api/services/upload"
	"genolens/api/utils"

	"go.uber.org/zap"
)

const analysisErrorPrefix = "Error analyzing genomic data: "

var (
	ErrNotReady           = errors.New("no uploaded file is ready for analysis")
	ErrAnalysisInProgress = errors.New("an analysis is already in progress")
	ErrNotComplete        = errors.New("no completed analysis to refresh")
	ErrNoAnalysis         = errors.New("no analysis in progress")
)

/*
Controller owns the dashboard state machine

	NoFile -> FileUploaded -> Analyzing -> AnalysisComplete

with Reset back to NoFile from any state. Every mutation happens under mux;
uploads and analyses carry a generation number so late ticks or results
of a replaced, cancelled or reset operation are dropped.
*/
type Controller struct {
	previewChars int
	timeout      time.Duration
	simulator    *upload.Simulator
	source       Source
	logger       *zap.Logger

	mux sync.Mutex

	state         constants.DashboardState
	uploadState   *models.UploadState
	currentUpload *upload.Upload
	uploadGen     uint64
	contentSample string

	analysisGen    uint64
	cancelAnalysis context.CancelFunc
	lastOutcome    Outcome
	collections    []models.InsightCollection
	lastError      string

	notifications []models.Notification
}

func NewController(cfg *models.Config, simulator *upload.Simulator, source Source, logger *zap.Logger) *Controller {
	return &Controller{
		previewChars:  cfg.Upload.PreviewChars,
		timeout:       cfg.Analysis.Timeout,
		simulator:     simulator,
		source:        source,
		logger:        logger,
		state:         dashboardState.NoFile,
		collections:   []models.InsightCollection{},
		notifications: []models.Notification{},
	}
}

func (ctrl *Controller) Mode() constants.DashboardMode {
	return ctrl.source.Mode()
}

/*
BeginUpload replaces any previous file with the given one and starts the
simulated transfer. The returned channel is closed once the final outcome
of this upload has been applied (or discarded, if superseded).
*/
func (ctrl *Controller) BeginUpload(file models.GenomicFile) (<-chan struct{}, error) {
	ctrl.mux.Lock()
	defer ctrl.mux.Unlock()

	if ctrl.state == dashboardState.Analyzing {
		return nil, ErrAnalysisInProgress
	}

	u, err := ctrl.simulator.Begin(file)
	if err != nil {
		return nil, err
	}

	ctrl.abandonUpload()
	ctrl.uploadGen++
	gen := ctrl.uploadGen

	ctrl.clearAnalysis()
	ctrl.state = dashboardState.NoFile
	ctrl.contentSample = ""
	ctrl.currentUpload = u
	ctrl.uploadState = &models.UploadState{
		Id:       u.Id,
		FileName: u.Name,
		Size:     u.Size,
		Kind:     u.Kind,
		Phase:    uploadPhase.Uploading,
	}

	done := make(chan struct{})
	go ctrl.followUpload(gen, u, done)

	return done, nil
}

func (ctrl *Controller) followUpload(gen uint64, u *upload.Upload, done chan struct{}) {
	defer close(done)

	for percent := range u.Progress() {
		ctrl.mux.Lock()
		if gen == ctrl.uploadGen && ctrl.uploadState != nil {
			ctrl.uploadState.ProgressPercent = percent
		}
		ctrl.mux.Unlock()
	}

	result, err := u.Result(context.Background())

	ctrl.mux.Lock()
	defer ctrl.mux.Unlock()

	if gen != ctrl.uploadGen {
		ctrl.logger.Debug("Dropping superseded upload", zap.String("id", u.Id.String()))
		return
	}
	ctrl.currentUpload = nil

	if errors.Is(err, upload.ErrUploadCancelled) {
		recordUpload("cancelled")
		return
	}
	if err != nil {
		// phase stays Uploading; the operator picks another file or resets
		recordUpload("failed")
		ctrl.lastError = err.Error()
		ctrl.notifyUploadFailed(err)
		return
	}

	recordUpload("completed")
	ctrl.uploadState.Phase = uploadPhase.Uploaded
	ctrl.uploadState.ProgressPercent = 100
	ctrl.uploadState.MimeType = result.MimeType
	ctrl.contentSample = utils.TruncateRunes(result.Content, ctrl.previewChars)
	ctrl.state = dashboardState.FileUploaded

	ctrl.notifyUploadComplete(result.Kind)
	if !fileKind.IsRecognized(result.Kind) {
		ctrl.notifyUnrecognizedFormat(u.Name)
	}
}

/*
StartAnalysis runs the wired source asynchronously. It is only valid from
FileUploaded; the returned channel is closed when the analysis has
completed, failed or been discarded.
*/
func (ctrl *Controller) StartAnalysis() (<-chan struct{}, error) {
	ctrl.mux.Lock()
	defer ctrl.mux.Unlock()

	switch ctrl.state {
	case dashboardState.Analyzing:
		return nil, ErrAnalysisInProgress
	case dashboardState.FileUploaded:
	default:
		return nil, ErrNotReady
	}

	ctrl.analysisGen++
	gen := ctrl.analysisGen

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if ctrl.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), ctrl.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	ctrl.cancelAnalysis = cancel
	ctrl.state = dashboardState.Analyzing
	ctrl.lastError = ""
	ctrl.notifyAnalysisStarted()

	request := models.AnalysisRequest{ContentSample: ctrl.contentSample}

	done := make(chan struct{})
	go ctrl.runAnalysis(ctx, cancel, gen, request, done)

	return done, nil
}

func (ctrl *Controller) runAnalysis(ctx context.Context, cancel context.CancelFunc, gen uint64, request models.AnalysisRequest, done chan struct{}) {
	defer close(done)
	defer cancel()

	mode := string(ctrl.source.Mode())
	started := time.Now()

	outcome, err := ctrl.source.Analyze(ctx, request)

	ctrl.mux.Lock()
	defer ctrl.mux.Unlock()

	if gen != ctrl.analysisGen {
		ctrl.logger.Debug("Dropping superseded analysis result", zap.Uint64("generation", gen))
		return
	}
	ctrl.cancelAnalysis = nil

	if err != nil {
		message := outcome.Result.RawText
		if message == "" {
			message = fmt.Sprintf("%s%s", analysisErrorPrefix, err.Error())
		}

		recordAnalysis(mode, "failed", started)
		ctrl.logger.Warn("Analysis failed", zap.String("mode", mode), zap.Error(err))

		ctrl.state = dashboardState.FileUploaded
		ctrl.lastError = message
		ctrl.notifyAnalysisFailed(message)
		return
	}

	recordAnalysis(mode, "completed", started)
	ctrl.lastOutcome = outcome
	ctrl.collections = outcome.Collections
	ctrl.state = dashboardState.AnalysisComplete
	ctrl.notifyAnalysisComplete()
}

func (ctrl *Controller) CancelAnalysis() error {
	ctrl.mux.Lock()
	defer ctrl.mux.Unlock()

	if ctrl.state != dashboardState.Analyzing {
		return ErrNoAnalysis
	}

	ctrl.analysisGen++
	if ctrl.cancelAnalysis != nil {
		ctrl.cancelAnalysis()
		ctrl.cancelAnalysis = nil
	}
	ctrl.state = dashboardState.FileUploaded
	recordCancelledAnalysis(string(ctrl.source.Mode()))
	ctrl.notifyAnalysisCancelled()

	return nil
}

// Refresh re-samples (canned) or re-derives (live) the displayed collections.
func (ctrl *Controller) Refresh() error {
	ctrl.mux.Lock()
	defer ctrl.mux.Unlock()

	if ctrl.state != dashboardState.AnalysisComplete {
		return ErrNotComplete
	}

	ctrl.collections = ctrl.source.Refresh(ctrl.lastOutcome)
	recordRefresh()
	ctrl.notifyRefresh()

	return nil
}

// Reset drops everything, including pending notifications, and returns to NoFile.
func (ctrl *Controller) Reset() {
	ctrl.mux.Lock()
	defer ctrl.mux.Unlock()

	ctrl.clear()
	ctrl.notifications = []models.Notification{}
	ctrl.notifyReset()
}

// Shutdown cancels in-flight work without emitting notifications.
func (ctrl *Controller) Shutdown() {
	ctrl.mux.Lock()
	defer ctrl.mux.Unlock()

	ctrl.clear()
}

func (ctrl *Controller) Snapshot() dtos.DashboardDto {
	ctrl.mux.Lock()
	defer ctrl.mux.Unlock()

	snapshot := dtos.DashboardDto{
		State:       ctrl.state,
		Mode:        ctrl.source.Mode(),
		Collections: make([]models.InsightCollection, len(ctrl.collections)),
		LastError:   ctrl.lastError,
	}
	if ctrl.uploadState != nil {
		uploadState := *ctrl.uploadState
		snapshot.Upload = &uploadState
	}
	for i, collection := range ctrl.collections {
		snapshot.Collections[i] = collection
		snapshot.Collections[i].Insights = append([]models.Insight(nil), collection.Insights...)
	}

	return snapshot
}

func (ctrl *Controller) DrainNotifications() []models.Notification {
	ctrl.mux.Lock()
	defer ctrl.mux.Unlock()

	drained := ctrl.notifications
	ctrl.notifications = []models.Notification{}
	return drained
}

// - helpers (must hold mux)
func (ctrl *Controller) clear() {
	ctrl.abandonUpload()
	ctrl.uploadGen++
	ctrl.clearAnalysis()

	ctrl.state = dashboardState.NoFile
	ctrl.uploadState = nil
	ctrl.contentSample = ""
}

func (ctrl *Controller) abandonUpload() {
	if ctrl.currentUpload != nil {
		ctrl.currentUpload.Cancel()
		ctrl.currentUpload = nil
	}
}

func (ctrl *Controller) clearAnalysis() {
	ctrl.analysisGen++
	if ctrl.cancelAnalysis != nil {
		ctrl.cancelAnalysis()
		ctrl.cancelAnalysis = nil
	}
	ctrl.lastOutcome = Outcome{}
	ctrl.collections = []models.InsightCollection{}
	ctrl.lastError = ""
}
