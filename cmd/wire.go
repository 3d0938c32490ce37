package cmd

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/adapters/backend"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/adapters/catalog"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/adapters/render/report"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/application"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/config"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/logging"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/ports"
	"github.com/sirupsen/logrus"
)

type app struct {
	cfg               config.Config
	log               *logrus.Logger
	registry          *application.RegistryService
	resolver          application.Resolver
	orchestrator      *application.Orchestrator
	comparer          application.Comparer
	reportRenderer    func(domain.IntelligenceRecord, report.RenderOptions) (string, error)
	compareRenderer   func(application.ComparisonView, report.RenderOptions) (string, error)
	countriesRenderer func([]domain.Country, bool) (string, error)
	now               func() time.Time
}

func wireApp(configFile string, logOutput io.Writer) (*app, error) {
	v, err := config.NewViper(configFile)
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, logOutput)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	sizeClasses, err := catalog.Load(cfg.Resolver.SizeClassesFile)
	if err != nil {
		return nil, fmt.Errorf("wire size classes: %w", err)
	}

	metric, err := application.MetricByName(cfg.Resolver.Metric)
	if err != nil {
		return nil, fmt.Errorf("wire resolver: %w", err)
	}

	client := backend.Client{
		API: backend.API{
			BaseURL:          cfg.API.BaseURL,
			CountriesPath:    cfg.API.CountriesPath,
			IntelligencePath: cfg.API.IntelligencePath,
			PingPath:         cfg.API.PingPath,
		},
		HTTPClient:     http.DefaultClient,
		Limiter:        backend.NewLimiter(cfg.API.RequestsPerMinute),
		RequestTimeout: cfg.API.RequestTimeout,
		Log:            log.WithField("component", "backend"),
	}

	clock := ports.SystemClock{}
	policy := application.DefaultFetchPolicy()
	policy.MainTimeout = cfg.Fetch.MainTimeout
	policy.ProbeTimeout = cfg.Fetch.ProbeTimeout
	policy.ColdStartAfter = cfg.Fetch.ColdStartAfter
	policy.ProgressInterval = cfg.Fetch.ProgressInterval
	policy.ProgressStep = cfg.Fetch.ProgressStep

	registry := application.NewRegistryService(
		client,
		sizeClasses.SizeClasses,
		clock,
		log.WithField("component", "registry"),
		application.RegistryPolicy{Attempts: cfg.Registry.Attempts, Backoff: cfg.Registry.Backoff},
	)

	return &app{
		cfg:               cfg,
		log:               log,
		registry:          registry,
		resolver:          application.NewResolver(sizeClasses.Thresholds, metric),
		orchestrator:      application.NewOrchestrator(client, clock, log.WithField("component", "orchestrator"), policy),
		comparer:          application.NewComparer(nil),
		reportRenderer:    report.RenderReport,
		compareRenderer:   report.RenderComparison,
		countriesRenderer: report.RenderCountries,
		now:               time.Now,
	}, nil
}
