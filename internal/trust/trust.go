package trust

import (
	"strings"

	"go.uber.org/zap"
)

// DomainSet holds the legitimate domains used as the reference set for
// lookalike-domain detection
type DomainSet struct {
	domains []string
	logger  *zap.Logger
}

// NewDomainSet creates a new trusted-domain set
func NewDomainSet(domains []string, logger *zap.Logger) *DomainSet {
	// Normalize domains (lowercase)
	normalized := make([]string, len(domains))
	for i, domain := range domains {
		normalized[i] = strings.ToLower(strings.TrimSpace(domain))
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized trusted-domain set", zap.Strings("domains", normalized))
	}

	return &DomainSet{
		domains: normalized,
		logger:  logger,
	}
}

// Domains returns the normalized trusted domains
func (s *DomainSet) Domains() []string {
	return s.domains
}

// Contains checks whether a domain is an exact member of the set
func (s *DomainSet) Contains(domain string) bool {
	domain = strings.ToLower(strings.TrimSpace(domain))
	for _, trusted := range s.domains {
		if trusted == domain {
			return true
		}
	}
	return false
}

// SenderDomain extracts the domain part of an email address, or "" when the
// address has no single @ separator
func SenderDomain(addr string) string {
	parts := strings.Split(addr, "@")
	if len(parts) != 2 {
		return ""
	}
	domain := strings.ToLower(strings.TrimSpace(parts[1]))
	// Strip a trailing display-name bracket, e.g. "Boss <ceo@corp.com>"
	domain = strings.TrimSuffix(domain, ">")
	return domain
}
