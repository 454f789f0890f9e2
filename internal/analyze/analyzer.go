// Package analyze implements the auxiliary, non-threat analyzers: sentiment,
// topic extraction, entity recognition and communication patterns.
package analyze

import (
	"github.com/B0LK13/email-intel-hub/internal/core"
)

// TextAnalyzer implements core.Analyzer over the parsed email text
type TextAnalyzer struct{}

// NewTextAnalyzer creates a new text analyzer
func NewTextAnalyzer() *TextAnalyzer {
	return &TextAnalyzer{}
}

// Patterns projects communication-pattern features from the parsed metadata
func (a *TextAnalyzer) Patterns(email *core.Email) core.CommunicationPatterns {
	return core.CommunicationPatterns{
		TimeSlot:    email.Metadata.TimeSlot,
		DayOfWeek:   email.Metadata.DayOfWeek,
		IsReply:     email.Metadata.IsReply,
		IsForward:   email.Metadata.IsForward,
		ThreadDepth: email.Metadata.ThreadDepth,
	}
}
