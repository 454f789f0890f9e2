package core

import (
	"context"
)

// Detector evaluates one threat category against a parsed email.
// Implementations must be pure: no shared mutable state between calls.
type Detector interface {
	// Name returns the threat category this detector evaluates
	Name() ThreatType

	// Detect scores the email for this threat
	Detect(email *Email) DetectorResult
}

// Analyzer produces the auxiliary, non-threat analysis results
type Analyzer interface {
	// Sentiment scores the body from -1 (negative) to 1 (positive)
	Sentiment(email *Email) SentimentResult

	// Topics extracts frequency-filtered keywords from the body
	Topics(email *Email) []Topic

	// Entities recognizes emails, URLs, IPs, phones and organizations
	Entities(email *Email) EntityResult

	// Patterns derives communication-pattern features
	Patterns(email *Email) CommunicationPatterns
}

// CacheRepository defines the interface for the content-addressed analysis cache
type CacheRepository interface {
	// Get retrieves the analysis cached under a fingerprint
	Get(ctx context.Context, fingerprint string) (*Analysis, error)

	// Set stores an analysis under a fingerprint, trimming oldest entries
	// past the size bound
	Set(ctx context.Context, fingerprint string, analysis *Analysis) error

	// Delete removes a cached analysis
	Delete(ctx context.Context, fingerprint string) error

	// List returns all cached analyses in insertion order
	List(ctx context.Context) ([]*Analysis, error)

	// Evict removes oldest-inserted entries down to the size bound
	Evict(ctx context.Context) error

	// Len reports the number of cached entries
	Len(ctx context.Context) (int, error)

	// Stop terminates the background sweep
	Stop()
}
