package analyze

import (
	"sort"
	"strings"

	"github.com/B0LK13/email-intel-hub/internal/core"
)

const (
	minTopicWordLength = 4
	minTopicFrequency  = 2
	maxTopics          = 10
)

var stopwords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {}, "will": {},
	"your": {}, "been": {}, "were": {}, "they": {}, "their": {}, "there": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "would": {}, "could": {},
	"should": {}, "about": {}, "please": {}, "them": {}, "then": {}, "than": {},
	"also": {}, "into": {}, "only": {}, "just": {}, "very": {}, "more": {},
	"some": {}, "such": {}, "here": {}, "each": {}, "other": {}, "because": {},
}

// Topics extracts frequency-filtered keywords from the body: lower-cased
// words of at least 4 letters, stopwords dropped, occurring at least twice,
// ordered by count descending then alphabetically, capped at 10
func (a *TextAnalyzer) Topics(email *core.Email) []core.Topic {
	counts := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(email.Body)) {
		word = strings.Trim(word, ".,!?;:\"'()[]<>")
		if len(word) < minTopicWordLength {
			continue
		}
		if _, ok := stopwords[word]; ok {
			continue
		}
		counts[word]++
	}

	topics := make([]core.Topic, 0, len(counts))
	for word, count := range counts {
		if count >= minTopicFrequency {
			topics = append(topics, core.Topic{Word: word, Count: count})
		}
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Count != topics[j].Count {
			return topics[i].Count > topics[j].Count
		}
		return topics[i].Word < topics[j].Word
	})
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	return topics
}
