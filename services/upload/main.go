package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"genolens/api/models"
	"genolens/api/models/constants"
	fileKind "genolens/api/models/constants/file-kind"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultTickInterval = 50 * time.Millisecond

	// gocron stalls on shorter intervals
	MinTickInterval = 10 * time.Millisecond
)

// progress advances in hundredths of the file size
const ticksPerUpload = 100

var ErrUploadCancelled = errors.New("upload cancelled")

type (
	Simulator struct {
		interval time.Duration
		logger   *zap.Logger
	}

	UploadResult struct {
		Kind     constants.FileKind
		Content  string
		MimeType string
		Size     int64
	}

	// Upload is a single simulated transfer. Progress values are sent on a
	// buffered channel that is closed after 100 or on Cancel.
	Upload struct {
		Id   uuid.UUID
		Name string
		Size int64
		Kind constants.FileKind

		file      models.GenomicFile
		scheduler *gocron.Scheduler
		logger    *zap.Logger

		mux       sync.Mutex
		ticks     int
		loaded    float64
		percent   int
		closed    bool
		cancelled bool
		progress  chan int

		stopOnce    sync.Once
		resolveOnce sync.Once
		done        chan struct{}
		result      UploadResult
		err         error
	}
)

func NewSimulator(interval time.Duration, logger *zap.Logger) *Simulator {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if interval < MinTickInterval {
		logger.Warn("Upload tick interval raised to minimum",
			zap.Duration("requested", interval),
			zap.Duration("minimum", MinTickInterval))
		interval = MinTickInterval
	}
	return &Simulator{
		interval: interval,
		logger:   logger,
	}
}

func (s *Simulator) Interval() time.Duration {
	return s.interval
}

/*
Begin detects the file kind and starts the tick schedule. The first tick
fires immediately; the caller consumes Progress() and then Result().
*/
func (s *Simulator) Begin(file models.GenomicFile) (*Upload, error) {
	if file == nil {
		return nil, errors.New("no file provided")
	}

	size := file.Size()
	if size < 0 {
		size = 0
	}

	u := &Upload{
		Id:        uuid.New(),
		Name:      file.Name(),
		Size:      size,
		Kind:      fileKind.DetectFileKind(file.Name()),
		file:      file,
		scheduler: gocron.NewScheduler(time.UTC),
		logger:    s.logger,
		progress:  make(chan int, ticksPerUpload+1),
		done:      make(chan struct{}),
	}

	u.scheduler.SingletonModeAll()
	if _, err := u.scheduler.Every(s.interval).Do(u.tick); err != nil {
		return nil, fmt.Errorf("scheduling upload ticks: %w", err)
	}
	u.scheduler.StartAsync()

	s.logger.Debug("Upload started",
		zap.String("id", u.Id.String()),
		zap.String("file", u.Name),
		zap.Int64("size", u.Size),
		zap.String("kind", string(u.Kind)))

	return u, nil
}

func (u *Upload) Progress() <-chan int {
	return u.progress
}

// Done is closed once the result is available.
func (u *Upload) Done() <-chan struct{} {
	return u.done
}

func (u *Upload) Result(ctx context.Context) (UploadResult, error) {
	select {
	case <-u.done:
		return u.result, u.err
	case <-ctx.Done():
		return UploadResult{}, ctx.Err()
	}
}

func (u *Upload) Cancel() {
	u.mux.Lock()
	u.cancelled = true
	u.closeProgress()
	u.mux.Unlock()

	u.resolve(UploadResult{}, ErrUploadCancelled)
	go u.stop()
}

func (u *Upload) tick() {
	u.mux.Lock()
	if u.closed {
		u.mux.Unlock()
		return
	}

	u.ticks++
	if u.Size == 0 || u.ticks >= ticksPerUpload {
		u.loaded = float64(u.Size)
	} else {
		u.loaded += float64(u.Size) / ticksPerUpload
	}

	percent := 100
	if u.Size > 0 {
		percent = int(math.Round(u.loaded / float64(u.Size) * 100))
	}
	if percent > 100 {
		percent = 100
	}
	if percent < u.percent {
		percent = u.percent
	}
	u.percent = percent
	u.progress <- percent

	finished := percent == 100
	if finished {
		u.closeProgress()
	}
	u.mux.Unlock()

	if finished {
		// the scheduler cannot be stopped from inside its own job
		go u.stop()
		go u.complete()
	}
}

func (u *Upload) complete() {
	content, err := u.read()

	u.mux.Lock()
	cancelled := u.cancelled
	u.mux.Unlock()
	if cancelled {
		return
	}

	if err != nil {
		u.logger.Error("Error reading uploaded file", zap.String("file", u.Name), zap.Error(err))
		u.resolve(UploadResult{}, fmt.Errorf("reading %s: %w", u.Name, err))
		return
	}

	u.resolve(UploadResult{
		Kind:     u.Kind,
		Content:  string(content),
		MimeType: mimetype.Detect(content).String(),
		Size:     u.Size,
	}, nil)
}

func (u *Upload) read() ([]byte, error) {
	reader, err := u.file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

// must hold mux
func (u *Upload) closeProgress() {
	if !u.closed {
		u.closed = true
		close(u.progress)
	}
}

func (u *Upload) resolve(result UploadResult, err error) {
	u.resolveOnce.Do(func() {
		u.result = result
		u.err = err
		close(u.done)
	})
}

func (u *Upload) stop() {
	u.stopOnce.Do(func() {
		u.scheduler.Stop()
	})
}
