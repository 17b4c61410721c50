package extract

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokArray
	tokOperator
	tokOther
)

type token struct {
	kind  tokenKind
	num   float64
	str   []byte
	op    string
	elems []token
}

type lexer struct {
	data []byte
	pos  int
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) regular() []byte {
	start := l.pos
	for l.pos < len(l.data) && !isSpace(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	return l.data[start:l.pos]
}

// next returns the next token; ok is false at the end of the data.
func (l *lexer) next() (t token, ok bool) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return token{}, false
	}
	c := l.data[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokString, str: l.literal()}, true
	case c == '<':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
			l.pos += 2
			return token{kind: tokOther}, true
		}
		l.pos++
		return token{kind: tokString, str: l.hex()}, true
	case c == '>':
		l.pos++
		if l.pos < len(l.data) && l.data[l.pos] == '>' {
			l.pos++
		}
		return token{kind: tokOther}, true
	case c == '[':
		l.pos++
		var elems []token
		for {
			l.skipSpace()
			if l.pos >= len(l.data) {
				break
			}
			if l.data[l.pos] == ']' {
				l.pos++
				break
			}
			e, ok := l.next()
			if !ok {
				break
			}
			elems = append(elems, e)
		}
		return token{kind: tokArray, elems: elems}, true
	case c == '/':
		l.pos++
		return token{kind: tokName, str: l.regular()}, true
	case c == ']' || c == ')' || c == '{' || c == '}':
		l.pos++
		return token{kind: tokOther}, true
	}
	word := l.regular()
	if len(word) == 0 {
		l.pos++
		return token{kind: tokOther}, true
	}
	if n, err := strconv.ParseFloat(string(word), 64); err == nil {
		return token{kind: tokNumber, num: n}, true
	}
	return token{kind: tokOperator, op: string(word)}, true
}

// literal reads a string literal; the opening parenthesis is consumed.
func (l *lexer) literal() []byte {
	var b []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return b
			}
		case '\\':
			if l.pos >= len(l.data) {
				return b
			}
			e := l.data[l.pos]
			l.pos++
			switch e {
			case 'n':
				b = append(b, '\n')
			case 'r':
				b = append(b, '\r')
			case 't':
				b = append(b, '\t')
			case 'b':
				b = append(b, '\b')
			case 'f':
				b = append(b, '\f')
			case '\r':
				if l.pos < len(l.data) && l.data[l.pos] == '\n' {
					l.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for k := 0; k < 2 && l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '7'; k++ {
						v = v*8 + int(l.data[l.pos]-'0')
						l.pos++
					}
					b = append(b, byte(v))
				} else {
					b = append(b, e)
				}
			}
			continue
		}
		b = append(b, c)
	}
	return b
}

// hex reads a hex string; the opening bracket is consumed.
func (l *lexer) hex() []byte {
	var digits []byte
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		c := l.data[l.pos]
		if _, err := strconv.ParseUint(string(c), 16, 8); err == nil {
			digits = append(digits, c)
		}
		l.pos++
	}
	l.pos++
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	for i := range out {
		v, _ := strconv.ParseUint(string(digits[2*i:2*i+2]), 16, 8)
		out[i] = byte(v)
	}
	return out
}

// skipInlineImage moves past the binary data of an inline image.
func (l *lexer) skipInlineImage() {
	i := bytes.Index(l.data[l.pos:], []byte("EI"))
	for i >= 0 {
		at := l.pos + i
		before := at == 0 || isSpace(l.data[at-1])
		after := at+2 >= len(l.data) || isSpace(l.data[at+2])
		if before && after {
			l.pos = at + 2
			return
		}
		next := bytes.Index(l.data[at+2:], []byte("EI"))
		if next < 0 {
			break
		}
		i = at + 2 + next - l.pos
	}
	l.pos = len(l.data)
}

// matrix is a PDF transformation matrix [a b c d e f].
type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

func (m matrix) mul(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

// TJ adjustments below this many thousandths of an em read as a word gap.
const tjWordGap = -250

// contentRuns returns the strings shown by a content stream, one run per
// text positioning. Positions come from the text matrix; the graphics state
// matrix is ignored. Strings are decoded as WinAnsi.
func contentRuns(data []byte) []textRun {
	var (
		runs      []textRun
		operands  []token
		tm, tlm   = identity, identity
		size      float64
		leading   float64
		continued bool
	)
	num := func(i int) float64 {
		if i < 0 || i >= len(operands) || operands[i].kind != tokNumber {
			return 0
		}
		return operands[i].num
	}
	last := func(k int) int { return len(operands) - k }
	moveTo := func(tx, ty float64) {
		tlm = matrix{1, 0, 0, 1, tx, ty}.mul(tlm)
		tm = tlm
		continued = false
	}
	show := func(s string) {
		if s == "" {
			return
		}
		if continued && len(runs) > 0 {
			runs[len(runs)-1].S += s
			return
		}
		scale := math.Hypot(tm[2], tm[3])
		if scale == 0 {
			scale = 1
		}
		runs = append(runs, textRun{X: tm[4], Y: tm[5], Size: size * scale, Phrase: true, S: s})
		continued = true
	}
	lastString := func() string {
		for i := len(operands) - 1; i >= 0; i-- {
			if operands[i].kind == tokString {
				return decodeWinAnsi(operands[i].str)
			}
		}
		return ""
	}

	l := &lexer{data: data}
	for {
		t, ok := l.next()
		if !ok {
			break
		}
		if t.kind != tokOperator {
			operands = append(operands, t)
			continue
		}
		switch t.op {
		case "BT":
			tm, tlm = identity, identity
			continued = false
		case "Tf":
			size = num(last(1))
		case "TL":
			leading = num(last(1))
		case "Td":
			moveTo(num(last(2)), num(last(1)))
		case "TD":
			leading = -num(last(1))
			moveTo(num(last(2)), num(last(1)))
		case "Tm":
			if len(operands) >= 6 {
				var m matrix
				for i := range m {
					m[i] = num(last(6 - i))
				}
				tlm, tm = m, m
				continued = false
			}
		case "T*":
			moveTo(0, -leading)
		case "Tj":
			show(lastString())
		case "'", "\"":
			moveTo(0, -leading)
			show(lastString())
		case "TJ":
			if len(operands) > 0 && operands[len(operands)-1].kind == tokArray {
				show(arrayText(operands[len(operands)-1].elems))
			}
		case "ID":
			l.skipInlineImage()
		}
		operands = operands[:0]
	}
	return runs
}

func arrayText(elems []token) string {
	var b strings.Builder
	for _, e := range elems {
		switch e.kind {
		case tokString:
			b.WriteString(decodeWinAnsi(e.str))
		case tokNumber:
			s := b.String()
			if e.num < tjWordGap && s != "" && !strings.HasSuffix(s, " ") {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// decodeWinAnsi maps string bytes to text, dropping control characters.
func decodeWinAnsi(raw []byte) string {
	s, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r == unicode.ReplacementChar || unicode.IsControl(r):
			return -1
		}
		return r
	}, string(s))
}
