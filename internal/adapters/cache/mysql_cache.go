package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/B0LK13/email-intel-hub/internal/core"
)

// MySQLCache is a MySQL implementation of the CacheRepository interface
type MySQLCache struct {
	db         *sql.DB
	maxEntries int
	logger     *zap.Logger
	sweepFreq  time.Duration
	stopCh     chan struct{}
}

// NewMySQLCache creates a new MySQL cache
func NewMySQLCache(dsn string, maxEntries int, sweepFreq time.Duration, logger *zap.Logger) (*MySQLCache, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_cache (
			seq BIGINT AUTO_INCREMENT PRIMARY KEY,
			fingerprint VARCHAR(64) NOT NULL UNIQUE,
			analysis LONGTEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	cache := &MySQLCache{
		db:         db,
		maxEntries: maxEntries,
		logger:     logger,
		sweepFreq:  sweepFreq,
		stopCh:     make(chan struct{}),
	}

	// Start background sweep
	go cache.startSweepTask()

	return cache, nil
}

// Get retrieves the analysis cached under a fingerprint
func (c *MySQLCache) Get(ctx context.Context, fingerprint string) (*core.Analysis, error) {
	var payload string
	err := c.db.QueryRowContext(ctx, `
		SELECT analysis FROM analysis_cache WHERE fingerprint = ?
	`, fingerprint).Scan(&payload)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	var analysis core.Analysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode cached analysis: %w", err)
	}
	return &analysis, nil
}

// Set stores an analysis under a fingerprint and trims oldest entries past
// the size bound
func (c *MySQLCache) Set(ctx context.Context, fingerprint string, analysis *core.Analysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO analysis_cache (fingerprint, analysis)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE analysis = VALUES(analysis)
	`, fingerprint, string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}

	return c.Evict(ctx)
}

// Delete removes a cached analysis
func (c *MySQLCache) Delete(ctx context.Context, fingerprint string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM analysis_cache WHERE fingerprint = ?
	`, fingerprint)
	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// List returns all cached analyses in insertion order
func (c *MySQLCache) List(ctx context.Context) ([]*core.Analysis, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT analysis FROM analysis_cache ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}
	defer rows.Close()

	var analyses []*core.Analysis
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		var analysis core.Analysis
		if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
			c.logger.Warn("Skipping undecodable cache entry", zap.Error(err))
			continue
		}
		analyses = append(analyses, &analysis)
	}
	return analyses, rows.Err()
}

// Evict removes oldest-inserted entries down to the size bound. MySQL cannot
// delete from a table referenced in a direct subquery, hence the wrapper
// select.
func (c *MySQLCache) Evict(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM analysis_cache
		WHERE seq NOT IN (
			SELECT seq FROM (
				SELECT seq FROM analysis_cache ORDER BY seq DESC LIMIT ?
			) keep
		)
	`, c.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to evict oldest entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.logger.Warn("Failed to get rows affected during eviction", zap.Error(err))
	} else if rowsAffected > 0 {
		c.logger.Debug("Evicted oldest cache entries", zap.Int64("evicted_count", rowsAffected))
	}

	return nil
}

// Len reports the number of cached entries
func (c *MySQLCache) Len(ctx context.Context) (int, error) {
	var count int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analysis_cache`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return count, nil
}

// startSweepTask starts a background task that periodically re-applies the
// size bound
func (c *MySQLCache) startSweepTask() {
	ticker := time.NewTicker(c.sweepFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Evict(context.Background()); err != nil {
				c.logger.Error("Failed to sweep cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background sweep task and closes the database connection
func (c *MySQLCache) Stop() {
	close(c.stopCh)
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close MySQL connection", zap.Error(err))
	}
}
