package detect

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/B0LK13/email-intel-hub/internal/core"
	"github.com/B0LK13/email-intel-hub/internal/trust"
)

// PhishingDetector scores credential-theft signals: phishing and urgency
// keywords, shortener/suspicious URLs and lookalike sender domains
type PhishingDetector struct {
	threshold float64
	trusted   *trust.DomainSet
}

// NewPhishingDetector creates a new phishing detector
func NewPhishingDetector(threshold float64, trusted *trust.DomainSet) *PhishingDetector {
	return &PhishingDetector{threshold: threshold, trusted: trusted}
}

// Name returns the threat category
func (d *PhishingDetector) Name() core.ThreatType {
	return core.ThreatPhishing
}

// Detect scores the email for phishing
func (d *PhishingDetector) Detect(email *core.Email) core.DetectorResult {
	var indicators []string
	text := email.Subject + "\n" + email.Body

	confidence := scanKeywords(text, phishingKeywords, 0.10, "phishing keyword", &indicators)
	confidence += scanKeywords(text, urgencyKeywords, 0.05, "urgency keyword", &indicators)

	for _, raw := range email.Metadata.URLs {
		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			confidence += 0.10
			indicators = append(indicators, fmt.Sprintf("malformed URL: %q", raw))
			continue
		}
		host := strings.ToLower(u.Hostname())
		for _, suspicious := range suspiciousDomains {
			if host == suspicious || strings.HasSuffix(host, "."+suspicious) {
				confidence += 0.15
				indicators = append(indicators, fmt.Sprintf("URL on suspicious domain: %q", host))
				break
			}
		}
		if suspiciousURLShape(u) {
			confidence += 0.20
			indicators = append(indicators, fmt.Sprintf("suspicious URL shape: %q", raw))
		}
	}

	if lookalike, trusted, ok := d.lookalikeSender(email.From); ok {
		confidence += 0.30
		indicators = append(indicators,
			fmt.Sprintf("sender domain %q resembles trusted domain %q", lookalike, trusted))
	}

	return finalize(confidence, d.threshold, indicators)
}

// suspiciousURLShape flags punycode hostnames, deep subdomain nesting and
// double dots in the path
func suspiciousURLShape(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	if strings.Contains(host, "xn--") {
		return true
	}
	if strings.Count(host, ".") >= 4 {
		return true
	}
	return strings.Contains(u.Path, "..")
}

// lookalikeSender reports a sender domain that is almost, but not exactly, a
// trusted domain
func (d *PhishingDetector) lookalikeSender(from string) (string, string, bool) {
	sender := trust.SenderDomain(from)
	if sender == "" || d.trusted == nil {
		return "", "", false
	}
	for _, trusted := range d.trusted.Domains() {
		similarity := levenshtein.Similarity(sender, trusted, nil)
		if similarity >= 0.8 && similarity < 1.0 {
			return sender, trusted, true
		}
	}
	return "", "", false
}
