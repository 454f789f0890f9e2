// Package ingest feeds the intelligence service from a spool directory,
// polling for new email files on a fixed interval.
package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/B0LK13/email-intel-hub/internal/config"
	"github.com/B0LK13/email-intel-hub/internal/core"
	"github.com/B0LK13/email-intel-hub/internal/parser"
)

var supportedExtensions = map[string]struct{}{
	".eml":  {},
	".msg":  {},
	".txt":  {},
	".mbox": {},
}

// Poller scans a spool directory for new email files and analyzes them in
// batches
type Poller struct {
	dir         string
	interval    time.Duration
	deleteAfter bool
	parser      *parser.Parser
	service     *core.IntelligenceService
	logger      *zap.Logger
	processed   map[string]struct{}
	stopCh      chan struct{}
	doneCh      chan struct{}
}

// NewPoller creates a new spool directory poller
func NewPoller(
	cfg config.IngestConfig,
	interval time.Duration,
	emailParser *parser.Parser,
	service *core.IntelligenceService,
	logger *zap.Logger,
) *Poller {
	return &Poller{
		dir:         cfg.Directory,
		interval:    interval,
		deleteAfter: cfg.DeleteAfter,
		parser:      emailParser,
		service:     service,
		logger:      logger,
		processed:   make(map[string]struct{}),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start begins polling the spool directory
func (p *Poller) Start() error {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return err
	}
	p.logger.Info("Watching spool directory",
		zap.String("directory", p.dir),
		zap.Duration("interval", p.interval))

	go p.run()
	return nil
}

// Stop terminates the polling loop and waits for it to finish
func (p *Poller) Stop() error {
	close(p.stopCh)
	<-p.doneCh
	return nil
}

func (p *Poller) run() {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.scan(context.Background())
	for {
		select {
		case <-ticker.C:
			p.scan(context.Background())
		case <-p.stopCh:
			return
		}
	}
}

// scan analyzes every new supported file in the spool directory
func (p *Poller) scan(ctx context.Context) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		p.logger.Error("Failed to read spool directory", zap.Error(err))
		return
	}

	var batch []*core.Email
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, done := p.processed[name]; done {
			continue
		}
		if _, ok := supportedExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}

		path := filepath.Join(p.dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			p.logger.Warn("Failed to read spool file", zap.Error(err), zap.String("file", name))
			continue
		}

		emails, err := p.parser.Parse(raw, name)
		if err != nil {
			p.logger.Warn("Failed to parse spool file, skipping",
				zap.Error(err), zap.String("file", name))
			p.processed[name] = struct{}{}
			continue
		}

		batch = append(batch, emails...)
		names = append(names, name)
		p.processed[name] = struct{}{}
	}

	if len(batch) == 0 {
		return
	}

	analyses := p.service.AnalyzeBatch(ctx, batch)
	p.logger.Info("Analyzed spool batch",
		zap.Int("files", len(names)),
		zap.Int("emails", len(batch)),
		zap.Int("analyses", len(analyses)))

	if p.deleteAfter {
		for _, name := range names {
			if err := os.Remove(filepath.Join(p.dir, name)); err != nil {
				p.logger.Warn("Failed to remove processed file",
					zap.Error(err), zap.String("file", name))
			}
		}
	}
}
