package di

import (
	"fmt"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/B0LK13/email-intel-hub/internal/analyze"
	"github.com/B0LK13/email-intel-hub/internal/config"
	"github.com/B0LK13/email-intel-hub/internal/core"
	"github.com/B0LK13/email-intel-hub/internal/factory"
	"github.com/B0LK13/email-intel-hub/internal/ingest"
	"github.com/B0LK13/email-intel-hub/internal/logging"
	"github.com/B0LK13/email-intel-hub/internal/parser"
	"github.com/B0LK13/email-intel-hub/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewAnalysisFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register parser
	if err := container.Provide(parser.New); err != nil {
		return nil, err
	}

	// Register cache repository
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}

	// Register detectors and analyzer
	if err := container.Provide(func(f *factory.AnalysisFactory) ([]core.Detector, error) {
		return f.CreateDetectors()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func() core.Analyzer {
		return analyze.NewTextAnalyzer()
	}); err != nil {
		return nil, err
	}

	// Register service configuration
	if err := container.Provide(func(f *factory.AnalysisFactory) (core.ServiceConfig, error) {
		return f.CreateServiceConfig()
	}); err != nil {
		return nil, err
	}

	// Register intelligence service
	if err := container.Provide(core.NewIntelligenceService); err != nil {
		return nil, err
	}

	// Register spool poller
	if err := container.Provide(func(
		cfg *config.Config,
		emailParser *parser.Parser,
		service *core.IntelligenceService,
		logger *zap.Logger,
	) (*ingest.Poller, error) {
		interval, err := cfg.GetDuration("ingest.poll_interval")
		if err != nil {
			return nil, fmt.Errorf("invalid ingest poll interval: %w", err)
		}
		if interval <= 0 {
			interval = 10 * time.Second
		}
		return ingest.NewPoller(cfg.GetIngest(), interval, emailParser, service, logger), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}
