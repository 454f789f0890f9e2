package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/B0LK13/email-intel-hub/internal/adapters/cache"
	"github.com/B0LK13/email-intel-hub/internal/config"
	"github.com/B0LK13/email-intel-hub/internal/core"
)

// CacheFactory creates cache repositories based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateCacheRepository creates a cache repository based on the configuration
func (f *CacheFactory) CreateCacheRepository() (core.CacheRepository, error) {
	cacheCfg, err := f.cfg.GetCache()
	if err != nil {
		return nil, err
	}
	sweepFreq, err := f.cfg.GetDuration("cache.sweep_frequency")
	if err != nil {
		return nil, fmt.Errorf("invalid cache sweep frequency: %w", err)
	}

	switch cacheCfg.Type {
	case "memory":
		return cache.NewMemoryCache(cacheCfg.MaxEntries, sweepFreq, f.logger), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(cacheCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return cache.NewSQLiteCache(cacheCfg.SQLitePath, cacheCfg.MaxEntries, sweepFreq, f.logger)
	case "mysql":
		return cache.NewMySQLCache(cacheCfg.MySQLDSN, cacheCfg.MaxEntries, sweepFreq, f.logger)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheCfg.Type)
	}
}
