package core

import (
	"time"
)

// Email represents a parsed email message
type Email struct {
	// Headers holds every parsed header with lower-cased, trimmed keys.
	Headers     map[string]string
	Subject     string
	From        string
	To          []string
	Date        string
	Body        string
	Attachments []Attachment
	Metadata    EmailMetadata
	SourceFile  string
}

// Attachment represents an email attachment
type Attachment struct {
	Filename string
	Size     int64
}

// EmailMetadata holds lightweight data derived from an email during parsing
type EmailMetadata struct {
	WordCount       int
	CharacterCount  int
	LineCount       int
	EmailAddresses  []string
	URLs            []string
	IPAddresses     []string
	Domains         []string
	HasAttachments  bool
	AttachmentCount int
	TimeSlot        string
	DayOfWeek       string
	IsReply         bool
	IsForward       bool
	ThreadDepth     int
	Language        string
}

// ThreatType identifies one of the threat categories evaluated per email
type ThreatType string

const (
	ThreatPhishing          ThreatType = "phishing"
	ThreatMalware           ThreatType = "malware"
	ThreatSpam              ThreatType = "spam"
	ThreatSocialEngineering ThreatType = "social_engineering"
	ThreatBEC               ThreatType = "bec"
)

// CategoryLegitimate is the category assigned when no detector fires
const CategoryLegitimate = "legitimate"

// DetectorResult represents the outcome of a single threat detector
type DetectorResult struct {
	Detected   bool
	Confidence float64
	// Indicators are human-readable explanations, for display only.
	Indicators []string
}

// RiskLevel is the coarse bucket derived from the numeric risk score
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskLevelForScore maps a risk score to its level. Boundary values belong
// to the higher band.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score < 25:
		return RiskLow
	case score < 50:
		return RiskMedium
	case score < 75:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// SentimentResult represents the outcome of the lexicon-based sentiment scorer
type SentimentResult struct {
	Score         float64
	Label         string
	PositiveWords int
	NegativeWords int
}

// Topic represents a frequency-filtered keyword extracted from the body
type Topic struct {
	Word  string
	Count int
}

// EntityResult holds entities recognized in an email
type EntityResult struct {
	Emails        []string
	URLs          []string
	IPAddresses   []string
	PhoneNumbers  []string
	Organizations []string
}

// CommunicationPatterns describes when and how an email fits a conversation
type CommunicationPatterns struct {
	TimeSlot    string
	DayOfWeek   string
	IsReply     bool
	IsForward   bool
	ThreadDepth int
}

// EmailSummary is the sanitized, truncated view of an email stored inside an Analysis
type EmailSummary struct {
	Subject         string
	From            string
	To              []string
	BodyPreview     string
	AttachmentCount int
}

// Analysis is the full result of analyzing one email. It is created once and
// never mutated afterwards; the cache owns it until eviction.
type Analysis struct {
	ID         string
	Timestamp  time.Time
	Email      EmailSummary
	Threats    map[ThreatType]DetectorResult
	Sentiment  SentimentResult
	Topics     []Topic
	Entities   EntityResult
	Patterns   CommunicationPatterns
	RiskScore  float64
	RiskLevel  RiskLevel
	Category   string
	Confidence float64
	// ProcessingMs is how long detection and aggregation took.
	ProcessingMs int64
	// Error is set when the analysis completed in a degraded state.
	Error string
}

// Stats is a point-in-time summary over everything the service has analyzed
type Stats struct {
	TotalAnalyzed    int64
	CacheHits        int64
	CacheMisses      int64
	FailedItems      int64
	ThreatCounts     map[ThreatType]int64
	RiskLevels       map[RiskLevel]int64
	AverageRisk      float64
	AverageSentiment float64
}
