package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/thywilljoshua/pdf-notes/internal/summarize"
)

// JSON returns s as indented JSON followed by a newline.
func JSON(s summarize.Summary) ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func WriteJSON(path string, s summarize.Summary) error {
	b, err := JSON(s)
	if err != nil {
		return err
	}
	return writeFile(path, b)
}

// DecodeJSON parses a summary previously written by JSON. Missing lists
// decode as empty lists.
func DecodeJSON(r io.Reader) (summarize.Summary, error) {
	var s summarize.Summary
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return summarize.Summary{}, fmt.Errorf("decode summary: %w", err)
	}
	normalize(&s)
	return s, nil
}

func ReadJSON(path string) (summarize.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return summarize.Summary{}, err
	}
	defer f.Close()
	return DecodeJSON(f)
}

func YAML(s summarize.Summary) ([]byte, error) {
	return yaml.Marshal(s)
}

func WriteYAML(path string, s summarize.Summary) error {
	b, err := YAML(s)
	if err != nil {
		return err
	}
	return writeFile(path, b)
}

func DecodeYAML(data []byte) (summarize.Summary, error) {
	var s summarize.Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return summarize.Summary{}, fmt.Errorf("decode summary: %w", err)
	}
	normalize(&s)
	return s, nil
}

func normalize(s *summarize.Summary) {
	if s.OverallSummary == nil {
		s.OverallSummary = []string{}
	}
	if s.KeyPoints == nil {
		s.KeyPoints = []string{}
	}
	if s.PageNotes == nil {
		s.PageNotes = []summarize.PageNote{}
	}
	for i := range s.PageNotes {
		if s.PageNotes[i].Keywords == nil {
			s.PageNotes[i].Keywords = []string{}
		}
	}
}
