package config

import (
	"fmt"
	"math"
)

// AnalysisConfig represents the configuration for the analysis pipeline
type AnalysisConfig struct {
	ThreatThreshold           float64
	BatchChunkSize            int
	FingerprintBodyLength     int
	BodyPreviewLength         int
	SentimentPenaltyThreshold float64
}

// DetectorWeights represents the aggregation weight of each threat detector
type DetectorWeights struct {
	Phishing          float64
	Malware           float64
	SocialEngineering float64
	Spam              float64
	BEC               float64
}

// Sum returns the total of all detector weights
func (w DetectorWeights) Sum() float64 {
	return w.Phishing + w.Malware + w.SocialEngineering + w.Spam + w.BEC
}

// DetectorConfig represents the configuration for the threat detectors
type DetectorConfig struct {
	Weights        DetectorWeights
	TrustedDomains []string
}

// CacheConfig represents the configuration for the analysis cache
type CacheConfig struct {
	Type       string
	MaxEntries int
	SQLitePath string
	MySQLDSN   string
}

// IngestConfig represents the configuration for the spool directory poller
type IngestConfig struct {
	Directory   string
	DeleteAfter bool
}

// GetAnalysis returns the validated analysis configuration
func (c *Config) GetAnalysis() (AnalysisConfig, error) {
	cfg := AnalysisConfig{
		ThreatThreshold:           c.GetFloat64("analysis.threat_threshold"),
		BatchChunkSize:            c.GetInt("analysis.batch_chunk_size"),
		FingerprintBodyLength:     c.GetInt("analysis.fingerprint_body_length"),
		BodyPreviewLength:         c.GetInt("analysis.body_preview_length"),
		SentimentPenaltyThreshold: c.GetFloat64("analysis.sentiment_penalty_threshold"),
	}
	if cfg.ThreatThreshold <= 0 || cfg.ThreatThreshold > 1 {
		return cfg, fmt.Errorf("analysis.threat_threshold must be in (0,1], got %v", cfg.ThreatThreshold)
	}
	if cfg.BatchChunkSize <= 0 {
		return cfg, fmt.Errorf("analysis.batch_chunk_size must be positive, got %d", cfg.BatchChunkSize)
	}
	if cfg.FingerprintBodyLength <= 0 {
		return cfg, fmt.Errorf("analysis.fingerprint_body_length must be positive, got %d", cfg.FingerprintBodyLength)
	}
	return cfg, nil
}

// GetDetectors returns the validated detector configuration
func (c *Config) GetDetectors() (DetectorConfig, error) {
	cfg := DetectorConfig{
		Weights: DetectorWeights{
			Phishing:          c.GetFloat64("detectors.weights.phishing"),
			Malware:           c.GetFloat64("detectors.weights.malware"),
			SocialEngineering: c.GetFloat64("detectors.weights.social_engineering"),
			Spam:              c.GetFloat64("detectors.weights.spam"),
			BEC:               c.GetFloat64("detectors.weights.bec"),
		},
		TrustedDomains: c.GetStringSlice("detectors.trusted_domains"),
	}
	if sum := cfg.Weights.Sum(); math.Abs(sum-1.0) > 1e-9 {
		return cfg, fmt.Errorf("detector weights must sum to 1.0, got %v", sum)
	}
	return cfg, nil
}

// GetCache returns the validated cache configuration
func (c *Config) GetCache() (CacheConfig, error) {
	cfg := CacheConfig{
		Type:       c.GetString("cache.type"),
		MaxEntries: c.GetInt("cache.max_entries"),
		SQLitePath: c.GetString("cache.sqlite_path"),
		MySQLDSN:   c.GetString("cache.mysql_dsn"),
	}
	if cfg.MaxEntries <= 0 {
		return cfg, fmt.Errorf("cache.max_entries must be positive, got %d", cfg.MaxEntries)
	}
	return cfg, nil
}

// GetIngest returns the ingest configuration
func (c *Config) GetIngest() IngestConfig {
	return IngestConfig{
		Directory:   c.GetString("ingest.directory"),
		DeleteAfter: c.GetBool("ingest.delete_after"),
	}
}
