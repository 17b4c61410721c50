package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/thywilljoshua/pdf-notes/internal/layout"
)

var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "PDFNOTES_"

// Config holds every setting of a run.
type Config struct {
	OutputPDF        string  `yaml:"output_pdf"`
	SummaryMarkdown  string  `yaml:"summary"`
	SummaryJSON      string  `yaml:"summary_json"`
	SummaryYAML      string  `yaml:"summary_yaml"`
	SummarySentences int     `yaml:"summary_sentences"`
	Keywords         int     `yaml:"keywords"`
	NotePosition     string  `yaml:"note_position"`
	NoteWidth        float64 `yaml:"note_width"`
	NoteHeight       float64 `yaml:"note_height"`
	LogLevel         string  `yaml:"log_level"`
}

func Default() Config {
	return Config{
		OutputPDF:        "annotated_output.pdf",
		SummaryMarkdown:  "summary.md",
		SummarySentences: 5,
		Keywords:         10,
		NotePosition:     layout.TopRight.String(),
		NoteWidth:        180,
		NoteHeight:       140,
		LogLevel:         "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path, if any.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from PDFNOTES_* variables. Values from the
// process environment win over values from envFile; a missing envFile is
// not an error. Unparsable numbers are reported.
func (c *Config) ApplyEnv(envFile string) error {
	fileEnv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read %s: %w", envFile, err)
		}
		if m != nil {
			fileEnv = m
		}
	}
	lookup := func(key string) (string, bool) {
		key = EnvPrefix + key
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok && v != ""
	}

	var errs []error
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	setFloat := func(key string, dst *float64) {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = f
		}
	}

	setString("OUTPUT_PDF", &c.OutputPDF)
	setString("SUMMARY", &c.SummaryMarkdown)
	setString("SUMMARY_JSON", &c.SummaryJSON)
	setString("SUMMARY_YAML", &c.SummaryYAML)
	setInt("SUMMARY_SENTENCES", &c.SummarySentences)
	setInt("KEYWORDS", &c.Keywords)
	setString("NOTE_POSITION", &c.NotePosition)
	setFloat("NOTE_WIDTH", &c.NoteWidth)
	setFloat("NOTE_HEIGHT", &c.NoteHeight)
	setString("LOG_LEVEL", &c.LogLevel)
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error
	if c.SummarySentences < 0 {
		errs = append(errs, fmt.Errorf("summary sentences must not be negative, got %d", c.SummarySentences))
	}
	if c.Keywords < 0 {
		errs = append(errs, fmt.Errorf("keywords must not be negative, got %d", c.Keywords))
	}
	if _, ok := layout.ParsePosition(c.NotePosition); !ok {
		errs = append(errs, fmt.Errorf("note position %q is not one of %s",
			c.NotePosition, strings.Join(layout.Positions(), ", ")))
	}
	if c.NoteWidth <= 0 || c.NoteHeight <= 0 {
		errs = append(errs, fmt.Errorf("note size must be positive, got %gx%g", c.NoteWidth, c.NoteHeight))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Position returns the parsed note position, top-right when invalid.
func (c Config) Position() layout.Position {
	p, _ := layout.ParsePosition(c.NotePosition)
	return p
}
