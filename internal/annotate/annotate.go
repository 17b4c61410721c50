// Package annotate runs the summarize-and-annotate pipeline over one PDF.
package annotate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thywilljoshua/pdf-notes/internal/config"
	"github.com/thywilljoshua/pdf-notes/internal/export"
	"github.com/thywilljoshua/pdf-notes/internal/extract"
	"github.com/thywilljoshua/pdf-notes/internal/render"
	"github.com/thywilljoshua/pdf-notes/internal/summarize"
)

// Result lists what a run produced. Empty paths were not written.
type Result struct {
	Pages           int    `json:"pages"`
	OutputPDF       string `json:"output_pdf,omitempty"`
	SummaryMarkdown string `json:"summary_markdown,omitempty"`
	SummaryJSON     string `json:"summary_json,omitempty"`
	SummaryYAML     string `json:"summary_yaml,omitempty"`
}

// Extractor reads the pages of a document.
type Extractor func(path string, logger *slog.Logger) ([]extract.Page, error)

// Pipeline runs extraction, summarization, export and rendering with one
// configuration.
type Pipeline struct {
	Config   config.Config
	Logger   *slog.Logger
	Extract  Extractor
	Composer render.Composer
}

// New returns a pipeline backed by extract.Open and pdfcpu.
func New(cfg config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Config:   cfg,
		Logger:   logger,
		Extract:  extract.Open,
		Composer: render.NewPDFCPU(),
	}
}

// Run summarizes the PDF at pdfPath, writes the configured summary files
// and the annotated copy of the document.
func Run(ctx context.Context, pdfPath string, cfg config.Config, logger *slog.Logger) (Result, error) {
	return New(cfg, logger).Run(ctx, pdfPath)
}

func (p *Pipeline) Run(ctx context.Context, pdfPath string) (Result, error) {
	pages, s, err := p.Summarize(ctx, pdfPath)
	if err != nil {
		return Result{}, err
	}
	res, err := p.writeSummaries(s)
	if err != nil {
		return res, err
	}
	res.Pages = len(pages)
	if p.Config.OutputPDF == "" {
		return res, nil
	}
	if err := p.renderTo(ctx, pdfPath, pageSizes(pages), s, p.Config.OutputPDF); err != nil {
		return res, err
	}
	res.OutputPDF = p.Config.OutputPDF
	p.Logger.Info("annotated PDF written", "path", res.OutputPDF, "pages", res.Pages)
	return res, nil
}

// Summarize extracts the pages of pdfPath and builds their summary.
func (p *Pipeline) Summarize(ctx context.Context, pdfPath string) ([]extract.Page, summarize.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, summarize.Summary{}, err
	}
	p.Logger.Info("extracting text", "path", pdfPath)
	pages, err := p.Extract(pdfPath, p.Logger)
	if err != nil {
		return nil, summarize.Summary{}, fmt.Errorf("read %s: %w", pdfPath, err)
	}
	texts := make([]summarize.PageText, len(pages))
	for i, pg := range pages {
		texts[i] = summarize.PageText{Index: pg.Index, Text: pg.Text}
	}
	s := summarize.Build(texts, p.Config.SummarySentences, p.Config.Keywords)
	p.Logger.Info("summary built",
		"pages", len(pages),
		"sentences", len(s.OverallSummary),
		"keywords", len(s.KeyPoints))
	return pages, s, nil
}

// RenderSummary draws an existing summary onto the PDF at pdfPath and
// writes the result to the configured output path. Summary files are not
// rewritten.
func (p *Pipeline) RenderSummary(ctx context.Context, pdfPath string, s summarize.Summary) (Result, error) {
	if p.Config.OutputPDF == "" {
		return Result{}, errors.New("no output PDF configured")
	}
	pages, err := p.Extract(pdfPath, p.Logger)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", pdfPath, err)
	}
	if len(s.PageNotes) != len(pages) {
		p.Logger.Warn("summary does not match document",
			"page_notes", len(s.PageNotes), "pages", len(pages))
	}
	if err := p.renderTo(ctx, pdfPath, pageSizes(pages), s, p.Config.OutputPDF); err != nil {
		return Result{}, err
	}
	return Result{Pages: len(pages), OutputPDF: p.Config.OutputPDF}, nil
}

func (p *Pipeline) writeSummaries(s summarize.Summary) (Result, error) {
	var res Result
	if path := p.Config.SummaryMarkdown; path != "" {
		if err := export.WriteMarkdown(path, s); err != nil {
			return res, fmt.Errorf("write summary: %w", err)
		}
		res.SummaryMarkdown = path
		p.Logger.Info("summary written", "path", path)
	}
	if path := p.Config.SummaryJSON; path != "" {
		if err := export.WriteJSON(path, s); err != nil {
			return res, fmt.Errorf("write summary json: %w", err)
		}
		res.SummaryJSON = path
		p.Logger.Info("summary written", "path", path)
	}
	if path := p.Config.SummaryYAML; path != "" {
		if err := export.WriteYAML(path, s); err != nil {
			return res, fmt.Errorf("write summary yaml: %w", err)
		}
		res.SummaryYAML = path
		p.Logger.Info("summary written", "path", path)
	}
	return res, nil
}

// renderTo writes the annotated document to out. A partially written file
// is removed on failure.
func (p *Pipeline) renderTo(ctx context.Context, pdfPath string, sizes []render.PageSize, s summarize.Summary, out string) (err error) {
	src, err := os.Open(pdfPath)
	if err != nil {
		return err
	}
	defer src.Close()

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(out)
		}
	}()

	opts := render.Options{
		Position:   p.Config.Position(),
		NoteWidth:  p.Config.NoteWidth,
		NoteHeight: p.Config.NoteHeight,
		Margin:     render.DefaultMargin,
	}
	r := render.New(p.Composer, opts, p.Logger)
	if err := r.Render(ctx, src, sizes, s, f); err != nil {
		return fmt.Errorf("render %s: %w", out, err)
	}
	return nil
}

func pageSizes(pages []extract.Page) []render.PageSize {
	sizes := make([]render.PageSize, len(pages))
	for i, pg := range pages {
		sizes[i] = render.PageSize{Width: pg.Width, Height: pg.Height}
	}
	return sizes
}
