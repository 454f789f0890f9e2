// Package detect implements the rule-based threat detectors. Each detector is
// a pure function of the parsed email: it scans fixed keyword and pattern
// lists, adds a fixed confidence increment per matched signal, clamps the sum
// to [0,1] and compares it against the shared threshold.
//
// Keyword matching is deliberately unanchored, case-insensitive substring
// matching, so a keyword can match inside a larger word.
package detect

import (
	"fmt"
	"strings"

	"github.com/B0LK13/email-intel-hub/internal/core"
	"github.com/B0LK13/email-intel-hub/internal/trust"
)

// All returns the full detector set in aggregation order
func All(threshold float64, trusted *trust.DomainSet) []core.Detector {
	return []core.Detector{
		NewPhishingDetector(threshold, trusted),
		NewMalwareDetector(threshold),
		NewSpamDetector(threshold),
		NewSocialEngineeringDetector(threshold),
		NewBECDetector(threshold),
	}
}

// finalize clamps the accumulated confidence and applies the detection
// threshold. Detected is always derived from the clamped confidence, never
// from the indicator count.
func finalize(confidence, threshold float64, indicators []string) core.DetectorResult {
	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0 {
		confidence = 0
	}
	return core.DetectorResult{
		Detected:   confidence >= threshold,
		Confidence: confidence,
		Indicators: indicators,
	}
}

// scanKeywords adds increment per keyword found in the text and records an
// indicator for each hit
func scanKeywords(text string, keywords []string, increment float64, label string, indicators *[]string) float64 {
	lower := strings.ToLower(text)
	confidence := 0.0
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			confidence += increment
			*indicators = append(*indicators, fmt.Sprintf("%s: %q", label, keyword))
		}
	}
	return confidence
}
