// Package utils holds the text normalization used when an email is condensed
// into the stored analysis view.
package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor bounds and sanitizes text fields before they are stored
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{logger: logger}
}

// ProcessText returns text bounded to maxSize bytes and guaranteed to be
// valid UTF-8. Truncation never splits a multi-byte rune; a truncated result
// carries a trailing ellipsis. A maxSize of zero or less means unbounded.
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	truncated := false
	if maxSize > 0 && len(text) > maxSize {
		text = text[:maxSize]
		for len(text) > 0 && !utf8.ValidString(text) {
			text = text[:len(text)-1]
		}
		truncated = true
		tp.logger.Debug("Text truncated", zap.Int("max_size", maxSize))
	}

	text = sanitizeUTF8(text)
	if truncated {
		return text + "..."
	}
	return text
}

// sanitizeUTF8 drops invalid byte sequences, keeping genuine replacement
// characters intact
func sanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
