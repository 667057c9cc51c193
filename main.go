package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"genolens/api/contexts"
	gam "genolens/api/middleware"
	"genolens/api/models"
	dashboardState "genolens/api/models/constants/dashboard-state"
	analyzeMvc "genolens/api/mvc/analyze"
	dashboardMvc "genolens/api/mvc/dashboard"
	insightsMvc "genolens/api/mvc/insights"
	serviceInfoMvc "genolens/api/mvc/service-info"
	"genolens/api/services/analysis"
	"genolens/api/services/dashboard"
	"genolens/api/services/generative"
	"genolens/api/services/insights"
	"genolens/api/services/upload"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	logger, err := newLogger(&cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	defer logger.Sync()

	logger.Info("Using configuration",
		zap.Bool("debug", cfg.Debug),
		zap.String("port", cfg.Api.Port),
		zap.Int64("maxUploadBytes", cfg.Api.MaxUploadBytes),
		zap.Duration("uploadTickInterval", cfg.Upload.TickInterval),
		zap.String("dashboardMode", cfg.Dashboard.Mode),
		zap.Bool("analysisBackendConfigured", cfg.Analysis.ProjectUrl != "" && cfg.Analysis.AnonKey != ""),
		zap.Bool("geminiConfigured", cfg.Gemini.ApiKey != ""),
		zap.String("geminiModel", cfg.Gemini.Model))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Service Singletons
	catalog, err := insights.LoadCatalog()
	if err != nil {
		logger.Fatal("Error loading insight catalog", zap.Error(err))
	}
	sampler := insights.NewSampler(catalog, cfg.Dashboard.Seed)

	// -- the generative backend stays unwired without a key; the
	//    analysis function then answers with a configuration error
	var generator generative.Generator
	if gemini, geminiErr := generative.NewGeminiService(ctx, &cfg, logger); geminiErr == nil {
		generator = gemini
	} else {
		logger.Warn("Generative backend disabled", zap.Error(geminiErr))
	}

	var source dashboard.Source
	switch dashboardState.CastToMode(cfg.Dashboard.Mode) {
	case dashboardState.LiveMode:
		source = dashboard.NewLiveSource(analysis.NewClient(&cfg, logger), analysis.DefaultPrompt, cfg.Dashboard.InsightsPerCategory)
	default:
		source = dashboard.NewCannedSource(sampler, cfg.Dashboard.CannedDelay, cfg.Dashboard.InsightsPerCategory)
	}

	simulator := upload.NewSimulator(cfg.Upload.TickInterval, logger)
	dashboardController := dashboard.NewController(&cfg, simulator, source, logger)

	// Instantiate Server
	e := echo.New()
	e.HideBanner = true
	e.Validator = gam.NewRequestValidator()

	// Configure Server
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
	}))
	e.Use(gam.RequestLogger(logger))

	// -- Override handlers with "custom Genolens" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.GenolensContext{
				Context:   c,
				Config:    &cfg,
				Log:       logger,
				Dashboard: dashboardController,
				Generator: generator,
				Catalog:   catalog,
				Sampler:   sampler,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", serviceInfoMvc.GetWelcome)

	// -- Service Info
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// -- Remote analysis function
	e.POST(fmt.Sprintf("/functions/v1/%s", cfg.Analysis.FunctionName), analyzeMvc.GeminiAnalyze)

	// -- Dashboard
	e.GET("/dashboard", dashboardMvc.GetDashboard)
	e.POST("/dashboard/upload", dashboardMvc.UploadFile,
		// middleware
		gam.LimitUploadBody(cfg.Api.MaxUploadBytes),
		gam.MandateGenomicFileUpload)
	e.POST("/dashboard/analysis", dashboardMvc.StartAnalysis)
	e.DELETE("/dashboard/analysis", dashboardMvc.CancelAnalysis)
	e.POST("/dashboard/refresh", dashboardMvc.Refresh)
	e.POST("/dashboard/reset", dashboardMvc.Reset)
	e.GET("/dashboard/notifications", dashboardMvc.GetNotifications)

	// -- Insights
	e.GET("/insights", insightsMvc.GetInsights)

	// Run
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Running", zap.String("port", cfg.Api.Port))
		if err := e.Start(":" + cfg.Api.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		dashboardController.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func newLogger(cfg *models.Config) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if cfg.Debug {
		level = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
