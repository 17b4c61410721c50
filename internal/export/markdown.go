// Package export writes a summary as Markdown, JSON or YAML.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thywilljoshua/pdf-notes/internal/summarize"
)

// Markdown renders s as a Markdown document with three sections.
func Markdown(s summarize.Summary) string {
	var b strings.Builder
	b.WriteString("# Document Summary\n\n## Overall Summary\n")
	for _, sentence := range s.OverallSummary {
		b.WriteString(fmt.Sprintf("- %s\n", sentence))
	}
	b.WriteString("\n## Key Points\n")
	for _, keyword := range s.KeyPoints {
		b.WriteString(fmt.Sprintf("- %s\n", keyword))
	}
	b.WriteString("\n## Page Notes\n")
	for _, note := range s.PageNotes {
		keywords := "(none)"
		if len(note.Keywords) > 0 {
			keywords = strings.Join(note.Keywords, ", ")
		}
		b.WriteString(fmt.Sprintf("- **Page %d**: %s (Keywords: %s)\n", note.Page, note.Summary, keywords))
	}
	return b.String()
}

func WriteMarkdown(path string, s summarize.Summary) error {
	return writeFile(path, []byte(Markdown(s)))
}

// writeFile creates the parent directories of path as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
