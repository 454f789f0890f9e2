package detect

import (
	"github.com/B0LK13/email-intel-hub/internal/core"
)

// BECDetector scores business-email-compromise signals: payment-redirection
// language and executive-impersonation in the sender
type BECDetector struct {
	threshold float64
}

// NewBECDetector creates a new BEC detector
func NewBECDetector(threshold float64) *BECDetector {
	return &BECDetector{threshold: threshold}
}

// Name returns the threat category
func (d *BECDetector) Name() core.ThreatType {
	return core.ThreatBEC
}

// Detect scores the email for business email compromise
func (d *BECDetector) Detect(email *core.Email) core.DetectorResult {
	var indicators []string
	text := email.Subject + "\n" + email.Body

	confidence := scanKeywords(text, becKeywords, 0.15, "BEC keyword", &indicators)
	confidence += scanKeywords(email.From, executiveTitles, 0.20, "executive title in sender", &indicators)

	return finalize(confidence, d.threshold, indicators)
}
