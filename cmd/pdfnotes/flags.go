package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-notes/internal/config"
	"github.com/thywilljoshua/pdf-notes/internal/layout"
)

// settings holds flag values. Only flags the user set override the
// config file and environment.
type settings struct {
	configPath string
	envFile    string
	cfg        config.Config
}

func bindSummaryFlags(cmd *cobra.Command, s *settings) {
	d := config.Default()
	cmd.Flags().StringVar(&s.configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&s.envFile, "env-file", ".env", "dotenv file with PDFNOTES_* settings")
	cmd.Flags().StringVar(&s.cfg.LogLevel, "log-level", d.LogLevel, "log level: debug|info|warn|error")
	cmd.Flags().IntVar(&s.cfg.SummarySentences, "summary-sentences", d.SummarySentences, "sentences in the overall summary")
	cmd.Flags().IntVar(&s.cfg.Keywords, "keywords", d.Keywords, "number of key points")
}

func bindRenderFlags(cmd *cobra.Command, s *settings) {
	d := config.Default()
	cmd.Flags().StringVarP(&s.cfg.OutputPDF, "output-pdf", "o", d.OutputPDF, "annotated PDF to write")
	cmd.Flags().StringVar(&s.cfg.NotePosition, "note-position", d.NotePosition,
		"note corner: "+strings.Join(layout.Positions(), "|"))
	cmd.Flags().Float64Var(&s.cfg.NoteWidth, "note-width", d.NoteWidth, "requested note width in points")
	cmd.Flags().Float64Var(&s.cfg.NoteHeight, "note-height", d.NoteHeight, "requested note height in points")
}

// resolve layers defaults, the config file, the environment and the flags
// the user set, in that order.
func (s *settings) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(s.envFile); err != nil {
		return cfg, err
	}
	f := cmd.Flags()
	set := func(name string, apply func()) {
		if fl := f.Lookup(name); fl != nil && fl.Changed {
			apply()
		}
	}
	set("log-level", func() { cfg.LogLevel = s.cfg.LogLevel })
	set("summary-sentences", func() { cfg.SummarySentences = s.cfg.SummarySentences })
	set("keywords", func() { cfg.Keywords = s.cfg.Keywords })
	set("output-pdf", func() { cfg.OutputPDF = s.cfg.OutputPDF })
	set("summary", func() { cfg.SummaryMarkdown = s.cfg.SummaryMarkdown })
	set("summary-json", func() { cfg.SummaryJSON = s.cfg.SummaryJSON })
	set("summary-yaml", func() { cfg.SummaryYAML = s.cfg.SummaryYAML })
	set("note-position", func() { cfg.NotePosition = s.cfg.NotePosition })
	set("note-width", func() { cfg.NoteWidth = s.cfg.NoteWidth })
	set("note-height", func() { cfg.NoteHeight = s.cfg.NoteHeight })
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return cfg.NewLogger(os.Stderr)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
