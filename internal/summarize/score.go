package summarize

import (
	"cmp"
	"slices"
)

// FrequencyTable maps a content word to the number of times it occurs in
// one scope (a whole document or a single page).
type FrequencyTable map[string]int

// NewFrequencyTable counts words.
func NewFrequencyTable(words []string) FrequencyTable {
	t := make(FrequencyTable, len(words))
	for _, w := range words {
		t[w]++
	}
	return t
}

// ScoredSentence is a sentence with its mean word frequency.
type ScoredSentence struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// ScoreSentences scores each sentence by the mean frequency of its content
// words. Sentences without content words score 0. Input order is kept.
func ScoreSentences(sentences []string, table FrequencyTable) []ScoredSentence {
	scored := make([]ScoredSentence, 0, len(sentences))
	for _, s := range sentences {
		words := TokenizeWords(s)
		if len(words) == 0 {
			scored = append(scored, ScoredSentence{Text: s})
			continue
		}
		total := 0
		for _, w := range words {
			total += table[w]
		}
		scored = append(scored, ScoredSentence{Text: s, Score: float64(total) / float64(len(words))})
	}
	return scored
}

// TopSentences returns up to limit sentences, best first. Equal scores keep
// their original order.
func TopSentences(sentences []string, table FrequencyTable, limit int) []string {
	scored := ScoreSentences(sentences, table)
	slices.SortStableFunc(scored, func(a, b ScoredSentence) int {
		return cmp.Compare(b.Score, a.Score)
	})
	out := []string{}
	for _, s := range scored[:clampLimit(limit, len(scored))] {
		out = append(out, s.Text)
	}
	return out
}

// TopKeywords returns up to limit distinct words ordered by descending count,
// ties broken by first occurrence.
func TopKeywords(words []string, limit int) []string {
	counts := NewFrequencyTable(words)
	distinct := make([]string, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		distinct = append(distinct, w)
	}
	slices.SortStableFunc(distinct, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})
	return distinct[:clampLimit(limit, len(distinct))]
}

func clampLimit(limit, n int) int {
	return max(0, min(limit, n))
}
