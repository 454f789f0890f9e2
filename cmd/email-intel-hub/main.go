package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/B0LK13/email-intel-hub/internal/core"
	"github.com/B0LK13/email-intel-hub/internal/di"
	"github.com/B0LK13/email-intel-hub/internal/ingest"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	poller *ingest.Poller,
	service *core.IntelligenceService,
	cacheRepo core.CacheRepository,
) error {
	defer logger.Sync()

	// Start the spool poller
	if err := poller.Start(); err != nil {
		logger.Fatal("Failed to start spool poller", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the poller
	if err := poller.Stop(); err != nil {
		logger.Error("Failed to stop spool poller", zap.Error(err))
	}

	// Stop the cache
	cacheRepo.Stop()

	stats := service.Stats()
	logger.Info("Shutdown complete",
		zap.Int64("total_analyzed", stats.TotalAnalyzed),
		zap.Int64("cache_hits", stats.CacheHits),
		zap.Int64("cache_misses", stats.CacheMisses),
		zap.Int64("failed_items", stats.FailedItems),
		zap.Float64("average_risk", stats.AverageRisk))

	return nil
}
