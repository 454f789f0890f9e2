package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/B0LK13/email-intel-hub/internal/core"
)

// MemoryCache is an in-memory implementation of the CacheRepository
// interface. Entries are evicted oldest-inserted first (FIFO, not LRU); a
// cache hit does not refresh an entry's position.
type MemoryCache struct {
	entries    map[string]*core.Analysis
	order      []string
	maxEntries int
	mu         sync.RWMutex
	logger     *zap.Logger
	sweepFreq  time.Duration
	stopCh     chan struct{}
}

// NewMemoryCache creates a new in-memory cache bounded to maxEntries
func NewMemoryCache(maxEntries int, sweepFreq time.Duration, logger *zap.Logger) *MemoryCache {
	cache := &MemoryCache{
		entries:    make(map[string]*core.Analysis),
		maxEntries: maxEntries,
		logger:     logger,
		sweepFreq:  sweepFreq,
		stopCh:     make(chan struct{}),
	}

	// Start background sweep
	go cache.startSweepTask()

	return cache
}

// Get retrieves the analysis cached under a fingerprint
func (c *MemoryCache) Get(ctx context.Context, fingerprint string) (*core.Analysis, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	analysis, ok := c.entries[fingerprint]
	if !ok {
		return nil, core.ErrCacheMiss
	}
	return analysis, nil
}

// Set stores an analysis under a fingerprint and trims oldest entries past
// the size bound
func (c *MemoryCache) Set(ctx context.Context, fingerprint string, analysis *core.Analysis) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[fingerprint]; !exists {
		c.order = append(c.order, fingerprint)
	}
	c.entries[fingerprint] = analysis
	c.trimLocked()
	return nil
}

// Delete removes a cached analysis
func (c *MemoryCache) Delete(ctx context.Context, fingerprint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[fingerprint]; !ok {
		return nil
	}
	delete(c.entries, fingerprint)
	for i, key := range c.order {
		if key == fingerprint {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all cached analyses in insertion order
func (c *MemoryCache) List(ctx context.Context) ([]*core.Analysis, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	analyses := make([]*core.Analysis, 0, len(c.order))
	for _, key := range c.order {
		analyses = append(analyses, c.entries[key])
	}
	return analyses, nil
}

// Evict removes oldest-inserted entries down to the size bound
func (c *MemoryCache) Evict(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := c.trimLocked()
	if evicted > 0 {
		c.logger.Debug("Evicted oldest cache entries", zap.Int("evicted_count", evicted))
	}
	return nil
}

// Len reports the number of cached entries
func (c *MemoryCache) Len(ctx context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}

// trimLocked removes oldest entries until the bound holds. Caller holds the
// write lock.
func (c *MemoryCache) trimLocked() int {
	evicted := 0
	for len(c.entries) > c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		evicted++
	}
	return evicted
}

// startSweepTask starts a background task that periodically re-applies the
// size bound
func (c *MemoryCache) startSweepTask() {
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

// Stop stops the background sweep task
func (c *MemoryCache) Stop() {
	close(c.stopCh)
}
