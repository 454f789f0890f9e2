package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/B0LK13/email-intel-hub/internal/utils"
)

// ServiceConfig carries the tuning knobs of the intelligence service
type ServiceConfig struct {
	ThreatThreshold           float64
	Weights                   map[ThreatType]float64
	SentimentPenaltyThreshold float64
	BatchChunkSize            int
	FingerprintBodyLength     int
	BodyPreviewLength         int
}

// IntelligenceService orchestrates detectors, analyzers and the cache for
// single emails and batches, and exposes aggregate statistics. All mutable
// state lives on the service instance; there are no package-level counters.
type IntelligenceService struct {
	detectors []Detector
	analyzer  Analyzer
	cache     CacheRepository
	text      *utils.TextProcessor
	logger    *zap.Logger
	cfg       ServiceConfig

	mu           sync.Mutex
	cacheHits    int64
	cacheMisses  int64
	failedItems  int64
	analyzed     int64
	threatCounts map[ThreatType]int64
	riskLevels   map[RiskLevel]int64
	riskSum      float64
	sentimentSum float64
}

// NewIntelligenceService creates a new intelligence service
func NewIntelligenceService(
	detectors []Detector,
	analyzer Analyzer,
	cache CacheRepository,
	text *utils.TextProcessor,
	logger *zap.Logger,
	cfg ServiceConfig,
) *IntelligenceService {
	return &IntelligenceService{
		detectors:    detectors,
		analyzer:     analyzer,
		cache:        cache,
		text:         text,
		logger:       logger,
		cfg:          cfg,
		threatCounts: make(map[ThreatType]int64),
		riskLevels:   make(map[RiskLevel]int64),
	}
}

// Fingerprint derives the deterministic cache key for an email from its
// subject, sender and body prefix.
func (s *IntelligenceService) Fingerprint(email *Email) string {
	body := email.Body
	if len(body) > s.cfg.FingerprintBodyLength {
		body = body[:s.cfg.FingerprintBodyLength]
	}
	sum := sha256.Sum256([]byte(email.Subject + "\x00" + email.From + "\x00" + body))
	return hex.EncodeToString(sum[:16])
}

// AnalyzeEmail analyzes a single email, returning the cached analysis if the
// same content was seen before. Detectors and analyzers run concurrently; a
// failing detector degrades to a zero result instead of failing the email.
func (s *IntelligenceService) AnalyzeEmail(ctx context.Context, email *Email) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fingerprint := s.Fingerprint(email)

	if cached, err := s.cache.Get(ctx, fingerprint); err == nil {
		s.mu.Lock()
		s.cacheHits++
		s.mu.Unlock()
		s.logger.Debug("Cache hit", zap.String("fingerprint", fingerprint))
		return cached, nil
	}
	s.mu.Lock()
	s.cacheMisses++
	s.mu.Unlock()

	start := time.Now()

	threats := make(map[ThreatType]DetectorResult, len(s.detectors))
	var (
		sentiment SentimentResult
		topics    []Topic
		entities  EntityResult
		patterns  CommunicationPatterns
		degraded  []string
		resMu     sync.Mutex
		wg        sync.WaitGroup
	)

	for _, d := range s.detectors {
		wg.Add(1)
		go func(d Detector) {
			defer wg.Done()
			result := s.runDetector(d, email, &resMu, &degraded)
			resMu.Lock()
			threats[d.Name()] = result
			resMu.Unlock()
		}(d)
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		defer s.recoverAnalyzer("sentiment", &resMu, &degraded)
		r := s.analyzer.Sentiment(email)
		resMu.Lock()
		sentiment = r
		resMu.Unlock()
	}()
	go func() {
		defer wg.Done()
		defer s.recoverAnalyzer("topics", &resMu, &degraded)
		r := s.analyzer.Topics(email)
		resMu.Lock()
		topics = r
		resMu.Unlock()
	}()
	go func() {
		defer wg.Done()
		defer s.recoverAnalyzer("entities", &resMu, &degraded)
		r := s.analyzer.Entities(email)
		resMu.Lock()
		entities = r
		resMu.Unlock()
	}()
	go func() {
		defer wg.Done()
		defer s.recoverAnalyzer("patterns", &resMu, &degraded)
		r := s.analyzer.Patterns(email)
		resMu.Lock()
		patterns = r
		resMu.Unlock()
	}()

	wg.Wait()

	assessment := CalculateOverallAssessment(
		threats, sentiment.Score, s.cfg.Weights, s.cfg.SentimentPenaltyThreshold)

	analysis := &Analysis{
		ID:           uuid.NewString(),
		Timestamp:    time.Now(),
		Email:        s.summarize(email),
		Threats:      threats,
		Sentiment:    sentiment,
		Topics:       topics,
		Entities:     entities,
		Patterns:     patterns,
		RiskScore:    assessment.RiskScore,
		RiskLevel:    assessment.RiskLevel,
		Category:     assessment.Category,
		Confidence:   assessment.Confidence,
		ProcessingMs: time.Since(start).Milliseconds(),
	}
	if len(degraded) > 0 {
		analysis.Error = fmt.Sprintf("degraded: %v failed", degraded)
	}

	if err := s.cache.Set(ctx, fingerprint, analysis); err != nil {
		s.logger.Error("Failed to cache analysis",
			zap.Error(err), zap.String("fingerprint", fingerprint))
	}

	s.record(analysis)
	return analysis, nil
}

// AnalyzeBatch analyzes emails in fixed-size chunks: concurrent within a
// chunk, strictly sequential between chunks. A failing item is logged and
// omitted; later items and chunks still run.
func (s *IntelligenceService) AnalyzeBatch(ctx context.Context, emails []*Email) []*Analysis {
	chunkSize := s.cfg.BatchChunkSize
	if chunkSize <= 0 {
		chunkSize = 50
	}

	analyses := make([]*Analysis, 0, len(emails))
	for offset := 0; offset < len(emails); offset += chunkSize {
		end := offset + chunkSize
		if end > len(emails) {
			end = len(emails)
		}
		chunk := emails[offset:end]

		results := make([]*Analysis, len(chunk))
		var wg sync.WaitGroup
		for i, email := range chunk {
			wg.Add(1)
			go func(i int, email *Email) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						s.logger.Error("Analysis panicked, item skipped",
							zap.Any("panic", r), zap.String("source", email.SourceFile))
						s.mu.Lock()
						s.failedItems++
						s.mu.Unlock()
					}
				}()
				analysis, err := s.AnalyzeEmail(ctx, email)
				if err != nil {
					s.logger.Warn("Analysis failed, item skipped",
						zap.Error(err), zap.String("source", email.SourceFile))
					s.mu.Lock()
					s.failedItems++
					s.mu.Unlock()
					return
				}
				results[i] = analysis
			}(i, email)
		}
		wg.Wait()

		for _, analysis := range results {
			if analysis != nil {
				analyses = append(analyses, analysis)
			}
		}
	}
	return analyses
}

// RecentAnalyses returns cached analyses whose timestamp falls inside the
// given window, in cache insertion order.
func (s *IntelligenceService) RecentAnalyses(ctx context.Context, window time.Duration) ([]*Analysis, error) {
	all, err := s.cache.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached analyses: %w", err)
	}
	cutoff := time.Now().Add(-window)
	recent := make([]*Analysis, 0, len(all))
	for _, analysis := range all {
		if analysis.Timestamp.After(cutoff) {
			recent = append(recent, analysis)
		}
	}
	return recent, nil
}

// Stats returns aggregate statistics over everything analyzed so far
func (s *IntelligenceService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		TotalAnalyzed: s.analyzed,
		CacheHits:     s.cacheHits,
		CacheMisses:   s.cacheMisses,
		FailedItems:   s.failedItems,
		ThreatCounts:  make(map[ThreatType]int64, len(s.threatCounts)),
		RiskLevels:    make(map[RiskLevel]int64, len(s.riskLevels)),
	}
	for threat, count := range s.threatCounts {
		stats.ThreatCounts[threat] = count
	}
	for level, count := range s.riskLevels {
		stats.RiskLevels[level] = count
	}
	if s.analyzed > 0 {
		stats.AverageRisk = s.riskSum / float64(s.analyzed)
		stats.AverageSentiment = s.sentimentSum / float64(s.analyzed)
	}
	return stats
}

func (s *IntelligenceService) runDetector(d Detector, email *Email, mu *sync.Mutex, degraded *[]string) (result DetectorResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Detector panicked, using zero result",
				zap.String("detector", string(d.Name())), zap.Any("panic", r))
			mu.Lock()
			*degraded = append(*degraded, string(d.Name()))
			mu.Unlock()
			result = DetectorResult{}
		}
	}()
	return d.Detect(email)
}

func (s *IntelligenceService) recoverAnalyzer(name string, mu *sync.Mutex, degraded *[]string) {
	if r := recover(); r != nil {
		s.logger.Error("Analyzer panicked, using zero result",
			zap.String("analyzer", name), zap.Any("panic", r))
		mu.Lock()
		*degraded = append(*degraded, name)
		mu.Unlock()
	}
}

func (s *IntelligenceService) summarize(email *Email) EmailSummary {
	return EmailSummary{
		Subject:         s.text.ProcessText(email.Subject, 200),
		From:            email.From,
		To:              email.To,
		BodyPreview:     s.text.ProcessText(email.Body, s.cfg.BodyPreviewLength),
		AttachmentCount: len(email.Attachments),
	}
}

func (s *IntelligenceService) record(analysis *Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.analyzed++
	s.riskSum += analysis.RiskScore
	s.sentimentSum += analysis.Sentiment.Score
	s.riskLevels[analysis.RiskLevel]++
	for threat, result := range analysis.Threats {
		if result.Detected {
			s.threatCounts[threat]++
		}
	}
}
