package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"

	"github.com/andrescamacho/takeoff-go/internal/adapters/metrics"
	"github.com/andrescamacho/takeoff-go/internal/adapters/persistence"
	"github.com/andrescamacho/takeoff-go/internal/adapters/planextract"
	"github.com/andrescamacho/takeoff-go/internal/application/estimate"
	"github.com/andrescamacho/takeoff-go/internal/application/logging"
	"github.com/andrescamacho/takeoff-go/internal/application/mediator"
	"github.com/andrescamacho/takeoff-go/internal/infrastructure/config"
	"github.com/andrescamacho/takeoff-go/internal/infrastructure/database"
)

// app is everything one command invocation needs
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	mediator mediator.Mediator
	logOut   io.WriteCloser
}

// newApp loads config, opens the database and wires the estimate handlers
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = logging.LevelDebug
	}

	logOut, err := cfg.Logging.OpenOutput()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logOut: logOut}
	if err := a.initMetrics(); err != nil {
		a.close()
		return nil, err
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db

	m := mediator.NewMediator()
	var requestMetrics *metrics.RequestMetricsCollector
	if metrics.IsEnabled() {
		requestMetrics = metrics.NewRequestMetricsCollector()
		if err := requestMetrics.Register(); err != nil {
			a.close()
			return nil, fmt.Errorf("failed to register request metrics: %w", err)
		}
	}
	m.Use(metrics.PrometheusMiddleware(requestMetrics))

	deps := estimate.Dependencies{
		CatalogRepo:   persistence.NewGormCatalogRepository(db),
		RegionRepo:    persistence.NewGormRegionRepository(db),
		OverrideRepo:  persistence.NewGormOverrideRepository(db),
		QuoteRepo:     persistence.NewGormQuoteRepository(db),
		DefaultRegion: defaultRegion(cfg),
		Multiplier:    cfg.Pricing.RegionalMultiplier,
	}
	if cfg.PlanExtraction.Enabled() {
		deps.Extractor = newExtractionClient(cfg.PlanExtraction)
	}
	if err := estimate.RegisterHandlers(m, deps); err != nil {
		a.close()
		return nil, err
	}
	a.mediator = m

	return a, nil
}

func (a *app) initMetrics() error {
	if !a.cfg.Metrics.Enabled {
		return nil
	}
	metrics.InitRegistry()

	estimateMetrics := metrics.NewEstimateMetricsCollector()
	if err := estimateMetrics.Register(); err != nil {
		return fmt.Errorf("failed to register estimate metrics: %w", err)
	}
	metrics.SetGlobalEstimateCollector(estimateMetrics)

	extractionMetrics := metrics.NewExtractionMetricsCollector()
	if err := extractionMetrics.Register(); err != nil {
		return fmt.Errorf("failed to register extraction metrics: %w", err)
	}
	metrics.SetGlobalExtractionCollector(extractionMetrics)
	return nil
}

// context returns a context carrying the configured logger
func (a *app) context() context.Context {
	logger := logging.NewStdLogger(a.logOut, a.cfg.Logging.Level, a.cfg.Logging.Format)
	return logging.WithLogger(context.Background(), logger)
}

// send dispatches a request with the configured logger in context
func (a *app) send(request mediator.Request) (mediator.Response, error) {
	return a.mediator.Send(a.context(), request)
}

// close writes the metrics textfile and releases the database
func (a *app) close() {
	if a.cfg.Metrics.Enabled {
		if err := metrics.WriteTextfile(a.cfg.Metrics.TextfilePath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if a.db != nil {
		database.Close(a.db)
	}
	if a.logOut != nil {
		a.logOut.Close()
	}
}

func newExtractionClient(cfg config.PlanExtractionConfig) *planextract.Client {
	return planextract.NewClient(planextract.Options{
		BaseURL:           cfg.BaseURL,
		APIKey:            cfg.APIKey,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RateLimit.Requests,
		Burst:             cfg.RateLimit.Burst,
		MaxRetries:        cfg.Retry.MaxAttempts,
		BackoffBase:       cfg.Retry.BackoffBase,
		FailureThreshold:  cfg.CircuitBreaker.FailureThreshold,
		CoolDown:          cfg.CircuitBreaker.CoolDown,
	})
}
