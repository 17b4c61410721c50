package extract

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/thywilljoshua/pdf-notes/internal/canvas"
)

func TestAssembleText(t *testing.T) {
	runs := []textRun{
		// second line, out of order
		{X: 60, Y: 700, W: 20, Size: 10, S: "line"},
		{X: 10, Y: 700, W: 40, Size: 10, S: "Second"},
		// first line, glyph by glyph with a word gap
		{X: 10, Y: 720, W: 5, Size: 10, S: "H"},
		{X: 15, Y: 720.5, W: 5, Size: 10, S: "i"},
		{X: 25, Y: 720, W: 20, Size: 10, S: "there."},
	}
	want := "Hi there.\nSecond line"
	if got := assembleText(runs); got != want {
		t.Errorf("assembleText = %q, want %q", got, want)
	}
}

func TestAssembleTextEmpty(t *testing.T) {
	if got := assembleText(nil); got != "" {
		t.Errorf("assembleText(nil) = %q", got)
	}
}

func TestAssembleTextKeepsExplicitSpaces(t *testing.T) {
	runs := []textRun{
		{X: 0, Y: 10, W: 10, Size: 10, S: "a "},
		{X: 30, Y: 10, W: 10, Size: 10, S: "b"},
	}
	if got := assembleText(runs); got != "a b" {
		t.Errorf("assembleText = %q, want %q", got, "a b")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"), nil)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestOpenNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path, nil); err == nil {
		t.Fatal("expected an error for a non-PDF file")
	}
}

func TestOpenReaderRecoversFromGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\ngarbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := openReader(f, 16); err == nil {
		t.Error("expected an error, got a reader")
	}
	texts := extractTextPerPage(f, 2, slog.Default())
	if len(texts) != 2 || texts[0] != "" || texts[1] != "" {
		t.Errorf("extractTextPerPage = %q, want two empty strings", texts)
	}
}

func TestAssembleTextPhrases(t *testing.T) {
	runs := []textRun{
		{X: 200, Y: 700, Size: 12, Phrase: true, S: "right"},
		{X: 72, Y: 700, Size: 12, Phrase: true, S: "The cat sat."},
		{X: 72, Y: 680, Size: 12, Phrase: true, S: "Next line"},
	}
	want := "The cat sat. right\nNext line"
	if got := assembleText(runs); got != want {
		t.Errorf("assembleText = %q, want %q", got, want)
	}
}

func TestContentRuns(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []textRun
	}{
		{
			name:    "absolute Td per text object",
			content: "q 1 1 1 rg 0 0 10 10 re f Q\nBT /F1 12 Tf 0 0 0 rg 72 400 Td (The cat \\(sat\\).) Tj ET\n",
			want:    []textRun{{X: 72, Y: 400, Size: 12, Phrase: true, S: "The cat (sat)."}},
		},
		{
			name:    "relative moves and T*",
			content: "BT /F2 10 Tf 14 TL 50 700 Td (one) Tj T* (two) Tj 0 -14 Td (three) ' ET",
			want: []textRun{
				{X: 50, Y: 700, Size: 10, Phrase: true, S: "one"},
				{X: 50, Y: 686, Size: 10, Phrase: true, S: "two"},
				{X: 50, Y: 658, Size: 10, Phrase: true, S: "three"},
			},
		},
		{
			name:    "TJ kerning and word gaps",
			content: "BT /F1 9 Tf 2 0 0 2 10 20 Tm [(Ke) 20 (rn) -400 (ed)] TJ ET",
			want:    []textRun{{X: 10, Y: 20, Size: 18, Phrase: true, S: "Kern ed"}},
		},
		{
			name:    "consecutive shows join",
			content: "BT /F1 9 Tf 5 5 Td (Hel) Tj (lo) Tj ET",
			want:    []textRun{{X: 5, Y: 5, Size: 9, Phrase: true, S: "Hello"}},
		},
		{
			name:    "WinAnsi bytes and hex strings",
			content: "BT /F1 9 Tf 1 2 Td (\\225 caf\\351) Tj 0 -10 Td <4869> Tj ET",
			want: []textRun{
				{X: 1, Y: 2, Size: 9, Phrase: true, S: "\u2022 caf\u00e9"},
				{X: 1, Y: -8, Size: 9, Phrase: true, S: "Hi"},
			},
		},
		{
			name:    "inline image skipped",
			content: "BI /W 1 /H 1 ID \x00(EI) garbage EI\nBT /F1 9 Tf 3 4 Td (after) Tj ET",
			want:    []textRun{{X: 3, Y: 4, Size: 9, Phrase: true, S: "after"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contentRuns([]byte(tt.content))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("contentRuns mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContentRunsCanvasPage(t *testing.T) {
	pg := canvas.New(612, 792)
	pg.FillRect(414, 634, 180, 140, canvas.LightGray)
	pg.ShowText(420, 760, canvas.HelveticaBold, 9, canvas.Black, "Notes (Page 1)")
	pg.ShowText(420, 746, canvas.Helvetica, 7.5, canvas.Black, "The cat sat. Keywords: cat")
	want := "Notes (Page 1)\nThe cat sat. Keywords: cat"
	if got := assembleText(contentRuns(pg.Content())); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestOpenCanvasPDF(t *testing.T) {
	pg := canvas.New(612, 792)
	pg.ShowText(72, 400, canvas.Helvetica, 12, canvas.Black, "The cat sat. The cat ran fast.")
	pg.ShowText(72, 380, canvas.Helvetica, 12, canvas.Black, "Dogs bark.")
	path := filepath.Join(t.TempDir(), "in.pdf")
	if err := os.WriteFile(path, pg.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Page{{Index: 1, Text: "The cat sat. The cat ran fast.\nDogs bark.", Width: 612, Height: 792}}
	if diff := cmp.Diff(want, pages); diff != "" {
		t.Errorf("Open mismatch (-want +got):\n%s", diff)
	}
}
