package core

import (
	"math"
	"testing"
)

var testWeights = map[ThreatType]float64{
	ThreatPhishing:          0.30,
	ThreatMalware:           0.25,
	ThreatSocialEngineering: 0.20,
	ThreatSpam:              0.15,
	ThreatBEC:               0.10,
}

func TestRiskLevelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0, RiskLow},
		{24.999, RiskLow},
		{25, RiskMedium},
		{49.999, RiskMedium},
		{50, RiskHigh},
		{74.999, RiskHigh},
		{75, RiskCritical},
		{100, RiskCritical},
	}

	for _, tt := range tests {
		if got := RiskLevelForScore(tt.score); got != tt.want {
			t.Errorf("RiskLevelForScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestCalculateOverallAssessment(t *testing.T) {
	tests := []struct {
		name           string
		threats        map[ThreatType]DetectorResult
		sentiment      float64
		wantScore      float64
		wantLevel      RiskLevel
		wantCategory   string
		wantConfidence float64
	}{
		{
			name:         "no threats",
			threats:      map[ThreatType]DetectorResult{},
			wantScore:    0,
			wantLevel:    RiskLow,
			wantCategory: CategoryLegitimate,
		},
		{
			name: "undetected results do not contribute",
			threats: map[ThreatType]DetectorResult{
				ThreatPhishing: {Detected: false, Confidence: 0.65},
				ThreatSpam:     {Detected: false, Confidence: 0.40},
			},
			wantScore:    0,
			wantLevel:    RiskLow,
			wantCategory: CategoryLegitimate,
		},
		{
			name: "single detected threat",
			threats: map[ThreatType]DetectorResult{
				ThreatPhishing: {Detected: true, Confidence: 0.80},
			},
			// 0.80 * 0.30 * 100
			wantScore:      24,
			wantLevel:      RiskLow,
			wantCategory:   string(ThreatPhishing),
			wantConfidence: 0.80,
		},
		{
			name: "category follows highest confidence, not highest weight",
			threats: map[ThreatType]DetectorResult{
				ThreatPhishing: {Detected: true, Confidence: 0.80},
				ThreatSpam:     {Detected: true, Confidence: 0.90},
			},
			// 0.80*0.30*100 + 0.90*0.15*100
			wantScore:      37.5,
			wantLevel:      RiskMedium,
			wantCategory:   string(ThreatSpam),
			wantConfidence: 0.90,
		},
		{
			name: "all threats detected at full confidence",
			threats: map[ThreatType]DetectorResult{
				ThreatPhishing:          {Detected: true, Confidence: 1.0},
				ThreatMalware:           {Detected: true, Confidence: 1.0},
				ThreatSpam:              {Detected: true, Confidence: 1.0},
				ThreatSocialEngineering: {Detected: true, Confidence: 1.0},
				ThreatBEC:               {Detected: true, Confidence: 1.0},
			},
			wantScore:      100,
			wantLevel:      RiskCritical,
			wantCategory:   string(ThreatPhishing),
			wantConfidence: 1.0,
		},
		{
			name: "negative sentiment penalty",
			threats: map[ThreatType]DetectorResult{
				ThreatMalware: {Detected: true, Confidence: 0.80},
			},
			sentiment: -0.6,
			// 0.80*0.25*100 + 10
			wantScore:      30,
			wantLevel:      RiskMedium,
			wantCategory:   string(ThreatMalware),
			wantConfidence: 0.80,
		},
		{
			name:         "penalty threshold is exclusive",
			threats:      map[ThreatType]DetectorResult{},
			sentiment:    -0.5,
			wantScore:    0,
			wantLevel:    RiskLow,
			wantCategory: CategoryLegitimate,
		},
		{
			name:         "penalty alone on a clean email",
			threats:      map[ThreatType]DetectorResult{},
			sentiment:    -0.9,
			wantScore:    10,
			wantLevel:    RiskLow,
			wantCategory: CategoryLegitimate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateOverallAssessment(tt.threats, tt.sentiment, testWeights, -0.5)
			if math.Abs(got.RiskScore-tt.wantScore) > 1e-9 {
				t.Errorf("RiskScore = %v, want %v", got.RiskScore, tt.wantScore)
			}
			if got.RiskLevel != tt.wantLevel {
				t.Errorf("RiskLevel = %s, want %s", got.RiskLevel, tt.wantLevel)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
			if math.Abs(got.Confidence-tt.wantConfidence) > 1e-9 {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestCategoryTiePrefersFixedOrder(t *testing.T) {
	threats := map[ThreatType]DetectorResult{
		ThreatSpam: {Detected: true, Confidence: 0.75},
		ThreatBEC:  {Detected: true, Confidence: 0.75},
	}

	got := CalculateOverallAssessment(threats, 0, testWeights, -0.5)
	// Equal confidences break toward the category evaluated first.
	if got.Category != string(ThreatSpam) {
		t.Errorf("Category = %q, want %q", got.Category, ThreatSpam)
	}
}
