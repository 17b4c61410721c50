// Package canvas draws filled rectangles and single lines of text onto a
// blank page and serializes the result as a self-contained one-page PDF.
package canvas

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

type Font int

const (
	Helvetica Font = iota
	HelveticaBold
)

var fonts = []struct {
	resource string
	baseFont string
}{
	Helvetica:     {"F1", "Helvetica"},
	HelveticaBold: {"F2", "Helvetica-Bold"},
}

func (f Font) String() string {
	if int(f) < 0 || int(f) >= len(fonts) {
		return fonts[Helvetica].baseFont
	}
	return fonts[f].baseFont
}

func (f Font) resource() string {
	if int(f) < 0 || int(f) >= len(fonts) {
		return fonts[Helvetica].resource
	}
	return fonts[f].resource
}

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

var (
	Black     = Color{}
	LightGray = Color{R: 0.827, G: 0.827, B: 0.827}
)

// Op is a single draw operation.
type Op interface {
	emit(b *bytes.Buffer)
}

// Rect fills a rectangle whose lower-left corner is at (X, Y).
type Rect struct {
	X, Y          float64
	Width, Height float64
	Fill          Color
}

func (r Rect) emit(b *bytes.Buffer) {
	fmt.Fprintf(b, "q %s rg %s %s %s %s re f Q\n",
		rgb(r.Fill), num(r.X), num(r.Y), num(r.Width), num(r.Height))
}

// Text shows one line of text with its baseline starting at (X, Y).
type Text struct {
	X, Y  float64
	Font  Font
	Size  float64
	Color Color
	Text  string
}

func (t Text) emit(b *bytes.Buffer) {
	fmt.Fprintf(b, "BT /%s %s Tf %s rg %s %s Td %s Tj ET\n",
		t.Font.resource(), num(t.Size), rgb(t.Color), num(t.X), num(t.Y), literal(t.Text))
}

// Page is a blank page of the given size in points plus the operations
// painted on it, in order.
type Page struct {
	Width, Height float64
	Ops           []Op
}

func New(width, height float64) *Page {
	return &Page{Width: width, Height: height}
}

func (p *Page) FillRect(x, y, width, height float64, c Color) {
	p.Ops = append(p.Ops, Rect{X: x, Y: y, Width: width, Height: height, Fill: c})
}

func (p *Page) ShowText(x, y float64, f Font, size float64, c Color, s string) {
	p.Ops = append(p.Ops, Text{X: x, Y: y, Font: f, Size: size, Color: c, Text: s})
}

// Content returns the page content stream.
func (p *Page) Content() []byte {
	var b bytes.Buffer
	for _, op := range p.Ops {
		op.emit(&b)
	}
	return b.Bytes()
}

// WriteTo writes the page as a complete PDF file.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	content := p.Content()

	var b bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, b.Len())
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	b.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] "+
		"/Resources << /Font << /%s 5 0 R /%s 6 0 R >> >> /Contents 4 0 R >>",
		num(p.Width), num(p.Height), Helvetica.resource(), HelveticaBold.resource()))
	obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	for _, f := range []Font{Helvetica, HelveticaBold} {
		obj(fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding >>", f))
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return b.WriteTo(w)
}

// Bytes returns the page as a complete PDF file.
func (p *Page) Bytes() []byte {
	var b bytes.Buffer
	p.WriteTo(&b) // writes to a bytes.Buffer do not fail
	return b.Bytes()
}

func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func rgb(c Color) string {
	return num(c.R) + " " + num(c.G) + " " + num(c.B)
}

// literal encodes s as a WinAnsi PDF string literal. Runes outside the
// encoding are shown as '?'.
func literal(s string) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
		}
		switch {
		case c == '(' || c == ')' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x20 || c > 0x7e:
			fmt.Fprintf(&b, "\\%03o", c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(')')
	return b.String()
}
