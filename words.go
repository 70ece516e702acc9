package scholarslide

import (
	"regexp"
	"strings"
)

// Ellipsis is the marker appended to word-limited text.
const Ellipsis = "..."

// WordCount returns the number of whitespace-delimited words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// LimitWords truncates text to at most maxWords whitespace-delimited words.
// Truncated text is rejoined with single spaces and suffixed with the
// ellipsis marker; text within the limit is returned unchanged. This is the
// single shared truncation implementation so field limits are enforced
// consistently.
func LimitWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + Ellipsis
}

// sentenceBoundary matches a period followed by whitespace or end of
// string. Abbreviations are intentionally not special-cased.
var sentenceBoundary = regexp.MustCompile(`\.(\s+|\s*$)`)

// SplitSentences splits text at sentence boundaries and returns the
// non-empty sentences, trimmed, in original order.
func SplitSentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// FirstSentence returns the text up to and including the first period,
// trimmed. Text without a period is returned whole.
func FirstSentence(text string) string {
	if i := strings.Index(text, "."); i >= 0 {
		return strings.TrimSpace(text[:i+1])
	}
	return strings.TrimSpace(text)
}
