package analyze

import (
	"regexp"
	"strings"

	"github.com/B0LK13/email-intel-hub/internal/core"
)

var (
	entityEmailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	entityURLPattern   = regexp.MustCompile(`https?://[^\s<>"']+`)
	entityIPPattern    = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	entityPhonePattern = regexp.MustCompile(`\+?\d[\d\s\-().]{7,}\d`)
)

var knownOrganizations = []string{
	"Microsoft", "Google", "Apple", "Amazon", "PayPal", "Netflix",
	"Facebook", "Twitter", "LinkedIn", "Chase", "Wells Fargo",
	"Bank of America", "IRS", "FedEx", "UPS", "DHL",
}

// Entities recognizes emails, URLs, IPs, phone numbers and known
// organizations in the subject and body
func (a *TextAnalyzer) Entities(email *core.Email) core.EntityResult {
	text := email.Subject + "\n" + email.Body

	// The phone pattern also matches dotted IPs, so those are filtered out.
	phones := make([]string, 0)
	for _, candidate := range entityPhonePattern.FindAllString(text, -1) {
		if entityIPPattern.MatchString(candidate) {
			continue
		}
		phones = append(phones, candidate)
	}

	result := core.EntityResult{
		Emails:       dedupe(entityEmailPattern.FindAllString(text, -1)),
		URLs:         dedupe(entityURLPattern.FindAllString(text, -1)),
		IPAddresses:  dedupe(entityIPPattern.FindAllString(text, -1)),
		PhoneNumbers: dedupe(phones),
	}

	lower := strings.ToLower(text)
	for _, org := range knownOrganizations {
		if strings.Contains(lower, strings.ToLower(org)) {
			result.Organizations = append(result.Organizations, org)
		}
	}
	return result
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
