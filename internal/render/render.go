// Package render paints page notes and a summary page onto a PDF.
package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thywilljoshua/pdf-notes/internal/canvas"
	"github.com/thywilljoshua/pdf-notes/internal/summarize"
)

// Renderer draws note overlays and the summary page onto a document.
type Renderer struct {
	Composer Composer
	Options  Options
	Logger   *slog.Logger

	// TempDir is where overlays are staged. Empty means os.TempDir().
	TempDir string
}

func New(c Composer, opts Options, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{Composer: c, Options: opts, Logger: logger}
}

// Render writes src to w with a note overlay on every page and the summary
// page appended at the end. pages holds the size of each page of src.
// A document without pages is copied unchanged.
func (r *Renderer) Render(ctx context.Context, src io.ReadSeeker, pages []PageSize, s summarize.Summary, w io.Writer) error {
	if len(pages) == 0 {
		_, err := io.Copy(w, src)
		return err
	}

	dir, err := os.MkdirTemp(r.TempDir, "pdfnotes-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	overlays := make(map[int]string, len(pages))
	for i, size := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		note := noteFor(s, i)
		path := filepath.Join(dir, fmt.Sprintf("overlay-%04d.pdf", i+1))
		if err := writePage(path, Overlay(note, size, r.Options)); err != nil {
			return fmt.Errorf("render overlay for page %d: %w", i+1, err)
		}
		overlays[i+1] = path
		r.Logger.Debug("overlay rendered", "page", i+1, "width", size.Width, "height", size.Height)
	}

	var stamped bytes.Buffer
	if err := r.Composer.Stamp(src, overlays, &stamped); err != nil {
		return err
	}

	summary := SummaryPage(s, pages[0]).Bytes()
	r.Logger.Debug("summary page rendered", "bytes", len(summary))
	return r.Composer.Append(bytes.NewReader(stamped.Bytes()), bytes.NewReader(summary), w)
}

// noteFor returns the note of the i-th page, or an empty note when the
// summary has fewer notes than the document has pages.
func noteFor(s summarize.Summary, i int) summarize.PageNote {
	if i < len(s.PageNotes) {
		return s.PageNotes[i]
	}
	return summarize.PageNote{Page: i + 1, Summary: summarize.NoText, Keywords: []string{}}
}

// writePage writes one rendered page to path; the page's serialized bytes
// are released before writePage returns.
func writePage(path string, pg *canvas.Page) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = pg.WriteTo(f)
	return err
}
