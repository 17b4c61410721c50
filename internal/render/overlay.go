package render

import (
	"fmt"
	"strings"

	"github.com/thywilljoshua/pdf-notes/internal/canvas"
	"github.com/thywilljoshua/pdf-notes/internal/layout"
	"github.com/thywilljoshua/pdf-notes/internal/summarize"
)

// DefaultMargin is the gap between a note box and the page edges.
const DefaultMargin = 18.0

// PageSize is the size of a page in points.
type PageSize struct {
	Width, Height float64
}

// Options control where and how large note boxes are drawn.
type Options struct {
	Position   layout.Position
	NoteWidth  float64
	NoteHeight float64
	Margin     float64
}

func DefaultOptions() Options {
	return Options{
		Position:   layout.TopRight,
		NoteWidth:  180,
		NoteHeight: 140,
		Margin:     DefaultMargin,
	}
}

// NoteText returns the title and body shown in the note box of a page.
func NoteText(note summarize.PageNote) (title, body string) {
	keywords := "No keywords"
	if len(note.Keywords) > 0 {
		keywords = strings.Join(note.Keywords, ", ")
	}
	return fmt.Sprintf("Notes (Page %d)", note.Page), fmt.Sprintf("%s\nKeywords: %s", note.Summary, keywords)
}

// Overlay draws the note box for one page on an otherwise empty page of the
// same size.
func Overlay(note summarize.PageNote, size PageSize, opts Options) *canvas.Page {
	box := layout.PlaceNote(size.Width, size.Height, opts.NoteWidth, opts.NoteHeight, opts.Margin, opts.Position)
	title, body := NoteText(note)

	pg := canvas.New(size.Width, size.Height)
	pg.FillRect(box.X, box.Y, box.Width, box.Height, canvas.LightGray)
	for _, l := range layout.WrapAndClip(title, body, box.Width, box.Height) {
		pg.ShowText(box.X+l.X, box.Y+l.Y, fontFor(l), l.Size, canvas.Black, l.Text)
	}
	return pg
}

// SummaryPage draws the standalone summary page.
func SummaryPage(s summarize.Summary, size PageSize) *canvas.Page {
	pg := canvas.New(size.Width, size.Height)
	for _, l := range layout.SummarySheet(size.Width, size.Height, s.OverallSummary, s.KeyPoints) {
		pg.ShowText(l.X, l.Y, fontFor(l), l.Size, canvas.Black, l.Text)
	}
	return pg
}

func fontFor(l layout.Line) canvas.Font {
	if l.Bold {
		return canvas.HelveticaBold
	}
	return canvas.Helvetica
}
