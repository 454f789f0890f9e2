package config

import (
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	analysis, err := cfg.GetAnalysis()
	if err != nil {
		t.Fatalf("GetAnalysis() error: %v", err)
	}
	if analysis.ThreatThreshold != 0.7 {
		t.Errorf("ThreatThreshold = %v, want 0.7", analysis.ThreatThreshold)
	}
	if analysis.BatchChunkSize != 50 {
		t.Errorf("BatchChunkSize = %d, want 50", analysis.BatchChunkSize)
	}
	if analysis.FingerprintBodyLength != 1000 {
		t.Errorf("FingerprintBodyLength = %d, want 1000", analysis.FingerprintBodyLength)
	}

	detectors, err := cfg.GetDetectors()
	if err != nil {
		t.Fatalf("GetDetectors() error: %v", err)
	}
	if sum := detectors.Weights.Sum(); sum != 1.0 {
		t.Errorf("weights sum = %v, want 1.0", sum)
	}
	if detectors.Weights.Phishing != 0.30 {
		t.Errorf("phishing weight = %v, want 0.30", detectors.Weights.Phishing)
	}
	if detectors.Weights.SocialEngineering != 0.20 {
		t.Errorf("social-engineering weight = %v, want 0.20", detectors.Weights.SocialEngineering)
	}
	if detectors.Weights.Spam != 0.15 {
		t.Errorf("spam weight = %v, want 0.15", detectors.Weights.Spam)
	}

	cache, err := cfg.GetCache()
	if err != nil {
		t.Fatalf("GetCache() error: %v", err)
	}
	if cache.Type != "memory" {
		t.Errorf("cache type = %q, want %q", cache.Type, "memory")
	}
	if cache.MaxEntries != 1000 {
		t.Errorf("cache max entries = %d, want 1000", cache.MaxEntries)
	}
}

func TestWeightValidation(t *testing.T) {
	v := NewEmptyViper()
	v.Set("detectors.weights.phishing", 0.50)
	cfg := NewFromViper(v)

	if _, err := cfg.GetDetectors(); err == nil {
		t.Error("GetDetectors() accepted weights that do not sum to 1.0")
	}
}

func TestAnalysisValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{"zero threshold", "analysis.threat_threshold", 0.0},
		{"threshold above one", "analysis.threat_threshold", 1.5},
		{"zero chunk size", "analysis.batch_chunk_size", 0},
		{"negative fingerprint length", "analysis.fingerprint_body_length", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewEmptyViper()
			v.Set(tt.key, tt.value)
			cfg := NewFromViper(v)
			if _, err := cfg.GetAnalysis(); err == nil {
				t.Errorf("GetAnalysis() accepted %s = %v", tt.key, tt.value)
			}
		})
	}
}

func TestCacheValidation(t *testing.T) {
	v := NewEmptyViper()
	v.Set("cache.max_entries", 0)
	cfg := NewFromViper(v)

	if _, err := cfg.GetCache(); err == nil {
		t.Error("GetCache() accepted a zero size bound")
	}
}
