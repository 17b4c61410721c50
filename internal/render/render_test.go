package render

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/thywilljoshua/pdf-notes/internal/canvas"
	"github.com/thywilljoshua/pdf-notes/internal/layout"
	"github.com/thywilljoshua/pdf-notes/internal/summarize"
)

type fakeComposer struct {
	overlays   map[int][]byte
	stampedSrc []byte
	appended   []byte
	stampErr   error
}

func (f *fakeComposer) Stamp(src io.ReadSeeker, overlays map[int]string, w io.Writer) error {
	if f.stampErr != nil {
		return f.stampErr
	}
	f.overlays = map[int][]byte{}
	for page, path := range overlays {
		data, err := os.ReadFile(strings.TrimSuffix(path, ":1"))
		if err != nil {
			return err
		}
		f.overlays[page] = data
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	f.stampedSrc = data
	_, err = w.Write([]byte("stamped:"))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (f *fakeComposer) Append(doc, extra io.ReadSeeker, w io.Writer) error {
	d, err := io.ReadAll(doc)
	if err != nil {
		return err
	}
	e, err := io.ReadAll(extra)
	if err != nil {
		return err
	}
	f.appended = e
	_, err = w.Write(append(d, []byte("+summary")...))
	return err
}

func testSummary() summarize.Summary {
	return summarize.Summary{
		OverallSummary: []string{"The cat sat."},
		KeyPoints:      []string{"cat", "sat"},
		PageNotes: []summarize.PageNote{
			{Page: 1, Summary: "The cat sat.", Keywords: []string{"cat", "sat"}},
			{Page: 2, Summary: summarize.NoText, Keywords: []string{}},
		},
	}
}

func TestNoteText(t *testing.T) {
	title, body := NoteText(summarize.PageNote{Page: 3, Summary: "Hello.", Keywords: []string{"a", "b"}})
	if title != "Notes (Page 3)" || body != "Hello.\nKeywords: a, b" {
		t.Errorf("NoteText = %q, %q", title, body)
	}
	_, body = NoteText(summarize.PageNote{Page: 1, Summary: summarize.NoText})
	if body != summarize.NoText+"\nKeywords: No keywords" {
		t.Errorf("NoteText without keywords = %q", body)
	}
}

func TestOverlay(t *testing.T) {
	note := summarize.PageNote{Page: 1, Summary: "The cat sat.", Keywords: []string{"cat"}}
	pg := Overlay(note, PageSize{Width: 612, Height: 792}, DefaultOptions())

	if pg.Width != 612 || pg.Height != 792 {
		t.Errorf("overlay size = %vx%v", pg.Width, pg.Height)
	}
	want := []canvas.Op{
		canvas.Rect{X: 414, Y: 634, Width: 180, Height: 140, Fill: canvas.LightGray},
		canvas.Text{X: 420, Y: 760, Font: canvas.HelveticaBold, Size: 9, Color: canvas.Black, Text: "Notes (Page 1)"},
		canvas.Text{X: 420, Y: 746, Font: canvas.Helvetica, Size: 7.5, Color: canvas.Black, Text: "The cat sat. Keywords: cat"},
	}
	if diff := cmp.Diff(want, pg.Ops); diff != "" {
		t.Errorf("overlay ops mismatch (-want +got):\n%s", diff)
	}
}

func TestOverlayClampsBox(t *testing.T) {
	opts := DefaultOptions()
	opts.NoteWidth, opts.NoteHeight = 5000, 5000
	opts.Position = layout.BottomLeft
	pg := Overlay(summarize.PageNote{Page: 1}, PageSize{Width: 300, Height: 200}, opts)

	rect, ok := pg.Ops[0].(canvas.Rect)
	if !ok {
		t.Fatalf("first op is %T, want canvas.Rect", pg.Ops[0])
	}
	want := canvas.Rect{X: 18, Y: 18, Width: 120, Height: 60, Fill: canvas.LightGray}
	if diff := cmp.Diff(want, rect); diff != "" {
		t.Errorf("clamped box mismatch (-want +got):\n%s", diff)
	}
}

func TestSummaryPage(t *testing.T) {
	pg := SummaryPage(testSummary(), PageSize{Width: 612, Height: 792})
	var texts []string
	for _, op := range pg.Ops {
		texts = append(texts, op.(canvas.Text).Text)
	}
	want := []string{"Document Summary", "Overall Summary", "• The cat sat.", "Key Points", "• cat", "• sat"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("summary page texts mismatch (-want +got):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	fc := &fakeComposer{}
	r := New(fc, DefaultOptions(), nil)
	r.TempDir = t.TempDir()

	src := bytes.NewReader([]byte("%PDF-source"))
	pages := []PageSize{{612, 792}, {400, 300}}
	var out bytes.Buffer
	if err := r.Render(context.Background(), src, pages, testSummary(), &out); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if got := out.String(); got != "stamped:%PDF-source+summary" {
		t.Errorf("output = %q", got)
	}
	if len(fc.overlays) != 2 {
		t.Fatalf("got %d overlays, want 2", len(fc.overlays))
	}
	for page, data := range fc.overlays {
		if !bytes.HasPrefix(data, []byte("%PDF-1.4")) {
			t.Errorf("overlay %d is not a PDF", page)
		}
	}
	if !bytes.Contains(fc.overlays[2], []byte("/MediaBox [0 0 400 300]")) {
		t.Errorf("overlay for page 2 does not have the page 2 size")
	}
	if !bytes.Contains(fc.appended, []byte("/MediaBox [0 0 612 792]")) {
		t.Errorf("summary page is not sized like page 1")
	}
	if !bytes.Contains(fc.appended, []byte("(Document Summary)")) {
		t.Errorf("summary page does not contain its heading")
	}

	entries, err := os.ReadDir(r.TempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("staging directory not removed: %v", entries)
	}
}

func TestRenderNoPages(t *testing.T) {
	fc := &fakeComposer{}
	r := New(fc, DefaultOptions(), nil)
	var out bytes.Buffer
	if err := r.Render(context.Background(), strings.NewReader("raw"), nil, summarize.Summary{}, &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "raw" {
		t.Errorf("output = %q, want source copied unchanged", out.String())
	}
	if fc.appended != nil {
		t.Error("summary page appended to a document without pages")
	}
}

func TestRenderMoreNotesThanPages(t *testing.T) {
	fc := &fakeComposer{}
	r := New(fc, DefaultOptions(), nil)
	r.TempDir = t.TempDir()
	s := testSummary()
	s.PageNotes = s.PageNotes[:1]

	var out bytes.Buffer
	err := r.Render(context.Background(), strings.NewReader("x"), []PageSize{{100, 100}, {100, 100}}, s, &out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(fc.overlays[2], []byte("(Notes \\(Page 2\\))")) {
		t.Errorf("missing fallback note on page 2")
	}
}

func TestRenderCanceled(t *testing.T) {
	r := New(&fakeComposer{}, DefaultOptions(), nil)
	r.TempDir = t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Render(ctx, strings.NewReader("x"), []PageSize{{100, 100}}, testSummary(), io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render error = %v, want context.Canceled", err)
	}
}

func TestRenderStampError(t *testing.T) {
	boom := errors.New("boom")
	r := New(&fakeComposer{stampErr: boom}, DefaultOptions(), nil)
	r.TempDir = t.TempDir()
	err := r.Render(context.Background(), strings.NewReader("x"), []PageSize{{100, 100}}, testSummary(), io.Discard)
	if !errors.Is(err, boom) {
		t.Errorf("Render error = %v, want %v", err, boom)
	}
}
