package detect

import (
	"fmt"
	"unicode"

	"github.com/B0LK13/email-intel-hub/internal/core"
)

// SpamDetector scores bulk-mail signals: spam keywords, shouting and
// punctuation density
type SpamDetector struct {
	threshold float64
}

// NewSpamDetector creates a new spam detector
func NewSpamDetector(threshold float64) *SpamDetector {
	return &SpamDetector{threshold: threshold}
}

// Name returns the threat category
func (d *SpamDetector) Name() core.ThreatType {
	return core.ThreatSpam
}

// Detect scores the email for spam
func (d *SpamDetector) Detect(email *core.Email) core.DetectorResult {
	var indicators []string
	text := email.Subject + "\n" + email.Body

	confidence := scanKeywords(text, spamKeywords, 0.08, "spam keyword", &indicators)

	if ratio := capsRatio(text); ratio > 0.30 {
		confidence += 0.20
		indicators = append(indicators, fmt.Sprintf("excessive capitalization: %.0f%% of letters", ratio*100))
	}
	if ratio := punctuationRatio(text); ratio > 0.10 {
		confidence += 0.15
		indicators = append(indicators, fmt.Sprintf("excessive punctuation: %.0f%% of characters", ratio*100))
	}

	return finalize(confidence, d.threshold, indicators)
}

// capsRatio is upper-case letters over total letters
func capsRatio(text string) float64 {
	letters, upper := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

// punctuationRatio is punctuation and symbol characters over total characters
func punctuationRatio(text string) float64 {
	total, punct := 0, 0
	for _, r := range text {
		total++
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			punct++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(punct) / float64(total)
}
