package layout

import (
	"strings"
	"unicode/utf8"
)

// Line is one line of text placed by the layout engine. X and Y locate the
// left end of the baseline.
type Line struct {
	Text string
	X, Y float64
	Size float64
	Bold bool
}

// Note box metrics, in points.
const (
	NotePadding      = 6.0
	NoteTitleSize    = 9.0
	NoteTitleOffset  = 14.0
	NoteBodySize     = 7.5
	NoteBodyOffset   = 28.0
	NoteBodyLeading  = 9.0
	NoteBottomMargin = 6.0
)

// avgAdvance approximates the advance width of a Helvetica glyph in ems.
// Line widths are counted in characters, not measured.
const (
	noteAdvance  = 0.7
	sheetAdvance = 0.58
)

// CharsPerLine returns how many characters of the given font size fit in
// width points, never less than one.
func CharsPerLine(width, size, advance float64) int {
	if size <= 0 || advance <= 0 {
		return 1
	}
	return max(1, int(width/(size*advance)))
}

// NoteWrapWidth is the wrap width in characters for a note box.
func NoteWrapWidth(boxWidth float64) int {
	return CharsPerLine(boxWidth-2*NotePadding, NoteBodySize, noteAdvance)
}

// WrapAndClip lays out a note inside a box of the given size. Coordinates
// are relative to the lower-left corner of the box. The title always takes
// the header line; body lines that would reach into the bottom margin are
// dropped without any marker.
func WrapAndClip(title, body string, boxWidth, boxHeight float64) []Line {
	lines := []Line{{
		Text: title,
		X:    NotePadding,
		Y:    boxHeight - NoteTitleOffset,
		Size: NoteTitleSize,
		Bold: true,
	}}
	y := boxHeight - NoteBodyOffset
	for _, text := range Wrap(body, NoteWrapWidth(boxWidth)) {
		if y < NoteBottomMargin {
			break
		}
		lines = append(lines, Line{Text: text, X: NotePadding, Y: y, Size: NoteBodySize})
		y -= NoteBodyLeading
	}
	return lines
}

// Wrap greedily breaks text into lines of at most width characters.
// Newlines count as whitespace and all whitespace runs collapse to a single
// space. Words longer than width are split. Hyphenated words are kept whole.
func Wrap(text string, width int) []string {
	width = max(width, 1)
	var (
		out    []string
		cur    strings.Builder
		curLen int
	)
	flush := func() {
		if curLen > 0 {
			out = append(out, cur.String())
			cur.Reset()
			curLen = 0
		}
	}
	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		if curLen > 0 && curLen+1+n > width {
			flush()
		}
		for n > width {
			head, tail := splitRunes(word, width)
			out = append(out, head)
			word, n = tail, n-width
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(word)
		curLen += n
	}
	flush()
	return out
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
