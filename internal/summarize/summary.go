package summarize

import "strings"

// NoText is the page note summary used when a page yields no sentence.
const NoText = "(No extractable text)"

// maxPageKeywords caps the keywords listed in a single page note.
const maxPageKeywords = 4

// PageText is the extracted text of one page. Index is 1-based.
type PageText struct {
	Index int
	Text  string
}

// PageNote is the note drawn on one page: its best sentence and keywords.
type PageNote struct {
	Page     int      `json:"page" yaml:"page"`
	Summary  string   `json:"summary" yaml:"summary"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Summary is the extractive summary of one document. It is not modified
// after Build returns.
type Summary struct {
	OverallSummary []string   `json:"overall_summary" yaml:"overall_summary"`
	KeyPoints      []string   `json:"key_points" yaml:"key_points"`
	PageNotes      []PageNote `json:"page_notes" yaml:"page_notes"`
}

// Build summarizes pages. The overall summary and key points are scored
// against the whole document; each page note is scored against that page
// alone so it reflects what the page itself emphasizes.
func Build(pages []PageText, sentenceCount, keywordCount int) Summary {
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	full := strings.Join(texts, "\n")
	words := TokenizeWords(full)
	table := NewFrequencyTable(words)

	s := Summary{
		OverallSummary: TopSentences(SplitSentences(full), table, sentenceCount),
		KeyPoints:      TopKeywords(words, keywordCount),
		PageNotes:      make([]PageNote, 0, len(pages)),
	}
	for i, p := range pages {
		page := p.Index
		if page <= 0 {
			page = i + 1
		}
		s.PageNotes = append(s.PageNotes, buildPageNote(page, p.Text, keywordCount))
	}
	return s
}

func buildPageNote(page int, text string, keywordCount int) PageNote {
	words := TokenizeWords(text)
	note := PageNote{
		Page:     page,
		Summary:  NoText,
		Keywords: TopKeywords(words, min(maxPageKeywords, keywordCount)),
	}
	if best := TopSentences(SplitSentences(text), NewFrequencyTable(words), 1); len(best) > 0 {
		note.Summary = best[0]
	}
	return note
}
