package analyze

import (
	"strings"

	"github.com/B0LK13/email-intel-hub/internal/core"
)

var positiveWords = []string{
	"thanks", "thank", "great", "good", "excellent", "appreciate",
	"happy", "pleased", "wonderful", "love", "glad", "perfect",
	"welcome", "congratulations", "helpful", "awesome",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "hate", "angry", "disappointed",
	"problem", "issue", "complaint", "unacceptable", "wrong", "fail",
	"worst", "annoyed", "frustrated", "refuse", "never", "threat",
}

// Sentiment scores the body with a word lexicon: (positive − negative) over
// total matched words, in [-1, 1], 0 when nothing matches
func (a *TextAnalyzer) Sentiment(email *core.Email) core.SentimentResult {
	words := strings.Fields(strings.ToLower(email.Body))

	result := core.SentimentResult{Label: "neutral"}
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:\"'()")
		if contains(positiveWords, word) {
			result.PositiveWords++
		} else if contains(negativeWords, word) {
			result.NegativeWords++
		}
	}

	total := result.PositiveWords + result.NegativeWords
	if total > 0 {
		result.Score = float64(result.PositiveWords-result.NegativeWords) / float64(total)
	}
	switch {
	case result.Score > 0.1:
		result.Label = "positive"
	case result.Score < -0.1:
		result.Label = "negative"
	}
	return result
}

func contains(list []string, word string) bool {
	for _, entry := range list {
		if entry == word {
			return true
		}
	}
	return false
}
