package detect

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/B0LK13/email-intel-hub/internal/core"
)

// MalwareDetector scores dangerous attachments and malware-lure language
type MalwareDetector struct {
	threshold float64
}

// NewMalwareDetector creates a new malware detector
func NewMalwareDetector(threshold float64) *MalwareDetector {
	return &MalwareDetector{threshold: threshold}
}

// Name returns the threat category
func (d *MalwareDetector) Name() core.ThreatType {
	return core.ThreatMalware
}

// Detect scores the email for malware delivery
func (d *MalwareDetector) Detect(email *core.Email) core.DetectorResult {
	var indicators []string
	confidence := 0.0

	for _, attachment := range email.Attachments {
		name := strings.ToLower(attachment.Filename)
		ext := filepath.Ext(name)
		if isMalwareExtension(ext) {
			confidence += 0.40
			indicators = append(indicators,
				fmt.Sprintf("dangerous attachment extension: %q", attachment.Filename))
		}
		// Double extension, e.g. invoice.pdf.exe
		if strings.Count(name, ".") >= 2 && isMalwareExtension(ext) {
			confidence += 0.30
			indicators = append(indicators,
				fmt.Sprintf("double-extension attachment: %q", attachment.Filename))
		}
	}

	confidence += scanKeywords(email.Body, malwareActionKeywords, 0.05, "malware lure", &indicators)

	return finalize(confidence, d.threshold, indicators)
}

func isMalwareExtension(ext string) bool {
	for _, dangerous := range malwareExtensions {
		if ext == dangerous {
			return true
		}
	}
	return false
}
