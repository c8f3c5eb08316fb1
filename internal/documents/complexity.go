package documents

import (
	"regexp"
	"strings"
)

// Indicators of dense legal drafting.
var legalTerms = []string{
	"whereas", "heretofore", "pursuant", "notwithstanding", "aforementioned",
	"covenant", "indemnify", "tortious", "subpoena", "affidavit",
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Complexity scores a document low/medium/high from average word length,
// average sentence length and the presence of legal terms. Thresholds match
// the heuristic the simplification level was tuned against.
func Complexity(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return "low"
	}

	var totalLen int
	for _, w := range words {
		totalLen += len(w)
	}
	avgWordLength := float64(totalLen) / float64(len(words))

	var sentences int
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}
	avgSentenceLength := float64(len(words)) / float64(sentences)

	lower := strings.ToLower(text)
	var legalTermCount float64
	for _, term := range legalTerms {
		if strings.Contains(lower, term) {
			legalTermCount++
		}
	}

	score := avgWordLength*0.3 + avgSentenceLength*0.4 + legalTermCount*0.3

	switch {
	case score < 8:
		return "low"
	case score < 15:
		return "medium"
	default:
		return "high"
	}
}

var commonWords = map[string]struct{}{
	"the": {}, "be": {}, "to": {}, "of": {}, "and": {}, "a": {}, "in": {},
	"that": {}, "have": {}, "it": {}, "for": {}, "not": {}, "on": {},
	"with": {}, "he": {}, "as": {}, "you": {}, "do": {}, "at": {}, "this": {},
}

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Keywords returns up to ten distinctive words for tagging.
func Keywords(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), "")
	var out []string
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 3 {
			continue
		}
		if _, common := commonWords[word]; common {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
		if len(out) == 10 {
			break
		}
	}
	return out
}

var mimeTypeLabels = map[string]string{
	"application/pdf":    "PDF Document",
	"application/msword": "Word Document",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "Word Document",
	"text/plain":      "Text Document",
	"text/html":       "HTML Document",
	"application/rtf": "RTF Document",
}

// TypeFromMIME maps a MIME type to a human-readable document label.
func TypeFromMIME(mimeType string) string {
	if label, ok := mimeTypeLabels[mimeType]; ok {
		return label
	}
	return "Unknown Document"
}
