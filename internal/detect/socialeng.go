package detect

import (
	"github.com/B0LK13/email-intel-hub/internal/core"
)

// SocialEngineeringDetector scores manipulation language and authority-brand
// impersonation
type SocialEngineeringDetector struct {
	threshold float64
}

// NewSocialEngineeringDetector creates a new social-engineering detector
func NewSocialEngineeringDetector(threshold float64) *SocialEngineeringDetector {
	return &SocialEngineeringDetector{threshold: threshold}
}

// Name returns the threat category
func (d *SocialEngineeringDetector) Name() core.ThreatType {
	return core.ThreatSocialEngineering
}

// Detect scores the email for social engineering
func (d *SocialEngineeringDetector) Detect(email *core.Email) core.DetectorResult {
	var indicators []string
	text := email.Subject + "\n" + email.Body

	confidence := scanKeywords(text, socialEngineeringKeywords, 0.10, "social-engineering keyword", &indicators)
	confidence += scanKeywords(text, authorityBrands, 0.15, "authority brand", &indicators)

	return finalize(confidence, d.threshold, indicators)
}
