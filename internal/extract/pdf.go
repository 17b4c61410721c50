package extract

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	rpdf "rsc.io/pdf"
)

// Page is one page of the input document. Index is 1-based; Width and
// Height are in points.
type Page struct {
	Index  int
	Text   string
	Width  float64
	Height float64
}

// Open reads the page geometry and text of the PDF at path. Failing to read
// the file or its page tree is an error. Failing to extract the text of a
// page is not: that page just gets empty text.
func Open(path string, logger *slog.Logger) ([]Page, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dims, err := pageDims(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	pages := make([]Page, len(dims))
	for i, d := range dims {
		pages[i] = Page{Index: i + 1, Width: d.Width, Height: d.Height}
	}

	texts := extractTextPerPage(f, len(pages), logger)
	for i := range pages {
		pages[i].Text = texts[i]
	}
	return pages, nil
}

type dim struct{ Width, Height float64 }

func relaxedConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func pageDims(rs io.ReadSeeker) ([]dim, error) {
	ds, err := api.PageDims(rs, relaxedConf())
	if err != nil {
		return nil, err
	}
	out := make([]dim, len(ds))
	for i, d := range ds {
		out[i] = dim{Width: d.Width, Height: d.Height}
	}
	return out, nil
}

// extractTextPerPage returns n strings, one per page. Pages that cannot be
// decoded yield "".
//
// Glyph runs come from rsc.io/pdf. It drops space glyphs and reports zero
// widths for standard 14 fonts without a /Widths array, which leaves no way
// to find word gaps. Such pages, and every page when rsc.io/pdf cannot read
// the file, are read again from their content streams through pdfcpu.
func extractTextPerPage(f *os.File, n int, logger *slog.Logger) []string {
	texts := make([]string, n)
	streams := &streamSource{f: f, logger: logger}

	st, err := f.Stat()
	if err != nil {
		logger.Warn("text extraction skipped", "error", err)
		return texts
	}
	doc, err := openReader(f, st.Size())
	if err != nil {
		logger.Debug("reading content streams", "reason", err)
		for i := range texts {
			texts[i] = streams.pageText(i + 1)
		}
		return texts
	}
	if doc.NumPage() != n {
		logger.Debug("page count mismatch", "text_pages", doc.NumPage(), "pages", n)
	}
	for i := 0; i < min(n, doc.NumPage()); i++ {
		runs, err := pageRuns(doc, i+1)
		if err != nil {
			logger.Debug("no text on page", "page", i+1, "error", err)
			continue
		}
		if unsized(runs) {
			if text := streams.pageText(i + 1); text != "" {
				texts[i] = text
				continue
			}
		}
		texts[i] = assembleText(runs)
	}
	return texts
}

// rsc.io/pdf reports malformed input by panicking.
func openReader(f io.ReaderAt, size int64) (doc *rpdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()
	return rpdf.NewReader(f, size)
}

func pageRuns(doc *rpdf.Reader, num int) (runs []textRun, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", num, r)
		}
	}()
	p := doc.Page(num)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: not found", num)
	}
	glyphs := p.Content().Text
	runs = make([]textRun, len(glyphs))
	for i, g := range glyphs {
		runs[i] = textRun{X: g.X, Y: g.Y, W: g.W, Size: g.FontSize, S: g.S}
	}
	return runs, nil
}

// unsized reports whether any run lacks a width.
func unsized(runs []textRun) bool {
	for _, r := range runs {
		if r.W == 0 && strings.TrimSpace(r.S) != "" {
			return true
		}
	}
	return false
}

// streamSource parses the document with pdfcpu on first use.
type streamSource struct {
	f      *os.File
	logger *slog.Logger

	loaded bool
	ctx    *model.Context
}

func (s *streamSource) pageText(num int) string {
	if !s.loaded {
		s.loaded = true
		ctx, err := readContext(s.f)
		if err != nil {
			s.logger.Warn("text extraction skipped", "error", err)
		}
		s.ctx = ctx
	}
	if s.ctx == nil || num > s.ctx.PageCount {
		return ""
	}
	data, err := pageContent(s.ctx, num)
	if err != nil {
		s.logger.Debug("no content stream", "page", num, "error", err)
		return ""
	}
	return assembleText(contentRuns(data))
}

func readContext(f *os.File) (ctx *model.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return api.ReadValidateAndOptimize(f, relaxedConf())
}

func pageContent(ctx *model.Context, num int) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", num, r)
		}
	}()
	r, err := pdfcpu.ExtractPageContent(ctx, num)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return io.ReadAll(r)
}

// textRun is a piece of text shown at (X, Y) in a font of the given size.
// A run with Phrase set is a whole shown string whose width is unknown.
type textRun struct {
	X, Y, W, Size float64
	Phrase        bool
	S             string
}

// assembleText orders runs top to bottom, left to right, and joins them
// into lines. Runs whose baselines are within half a font size of each
// other share a line. A space is inserted after a phrase run and where the
// gap between two runs on the same line is wider than a fraction of the
// font size.
func assembleText(runs []textRun) string {
	if len(runs) == 0 {
		return ""
	}
	type run struct {
		textRun
		line int
	}
	sorted := make([]run, len(runs))
	for i, t := range runs {
		sorted[i] = run{textRun: t}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })
	lineY := sorted[0].Y
	for i := range sorted {
		if math.Abs(sorted[i].Y-lineY) > 0.5*math.Max(sorted[i].Size, 1) {
			lineY = sorted[i].Y
			if i > 0 {
				sorted[i].line = sorted[i-1].line + 1
			}
			continue
		}
		if i > 0 {
			sorted[i].line = sorted[i-1].line
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].line != sorted[j].line {
			return sorted[i].line < sorted[j].line
		}
		return sorted[i].X < sorted[j].X
	})

	var b strings.Builder
	prev := sorted[0]
	b.WriteString(prev.S)
	for _, t := range sorted[1:] {
		switch {
		case t.line != prev.line:
			b.WriteByte('\n')
		case (prev.Phrase || t.X-(prev.X+prev.W) > 0.15*math.Max(t.Size, 1)) &&
			!strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " "):
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		prev = t
	}
	return b.String()
}
