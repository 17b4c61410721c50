package summarize

import (
	"regexp"
	"strings"
)

var wordRe = regexp.MustCompile(`[A-Za-z']{2,}`)

// stopWords is shared read-only data; nothing writes to it after init.
var stopWords = func() map[string]struct{} {
	words := []string{
		"a", "an", "and", "are", "as", "at", "be", "but", "by", "for",
		"from", "has", "have", "if", "in", "into", "is", "it", "its", "no",
		"not", "of", "on", "or", "such", "that", "the", "their", "then", "there",
		"these", "they", "this", "to", "was", "were", "will", "with", "we", "you",
		"your",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// IsStopWord reports whether w (already lower-cased) is ignored when scoring.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// SplitSentences collapses whitespace and splits text after sentence-terminal
// punctuation that is followed by whitespace.
func SplitSentences(text string) []string {
	cleaned := strings.Join(strings.Fields(text), " ")
	if cleaned == "" {
		return []string{}
	}
	var out []string
	start := 0
	for i := 1; i < len(cleaned); i++ {
		if cleaned[i] != ' ' || !isTerminal(cleaned[i-1]) {
			continue
		}
		out = append(out, cleaned[start:i])
		start = i + 1
	}
	return append(out, cleaned[start:])
}

func isTerminal(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// TokenizeWords returns the content words of text in occurrence order.
func TokenizeWords(text string) []string {
	words := []string{}
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if IsStopWord(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}
