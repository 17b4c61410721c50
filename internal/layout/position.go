package layout

import "strings"

// Position is the page corner a note box is anchored to.
type Position int

const (
	TopRight Position = iota
	TopLeft
	BottomLeft
	BottomRight
)

var positionNames = map[Position]string{
	TopRight:    "top-right",
	TopLeft:     "top-left",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

func (p Position) String() string {
	if s, ok := positionNames[p]; ok {
		return s
	}
	return positionNames[TopRight]
}

// ParsePosition maps a corner name such as "bottom-left" to a Position.
// Unrecognized names fall back to TopRight; ok reports whether s was valid.
func ParsePosition(s string) (p Position, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for pos, name := range positionNames {
		if name == s {
			return pos, true
		}
	}
	return TopRight, false
}

// Positions lists the valid corner names.
func Positions() []string {
	return []string{
		TopRight.String(), TopLeft.String(), BottomRight.String(), BottomLeft.String(),
	}
}

// NoteOrigin returns the lower-left corner of a box of the given size placed
// flush against corner pos, inset by margin on both axes. Page content under
// the box is not taken into account.
func NoteOrigin(pageWidth, pageHeight, boxWidth, boxHeight, margin float64, pos Position) (x, y float64) {
	switch pos {
	case TopLeft:
		return margin, pageHeight - boxHeight - margin
	case BottomLeft:
		return margin, margin
	case BottomRight:
		return pageWidth - boxWidth - margin, margin
	default:
		return pageWidth - boxWidth - margin, pageHeight - boxHeight - margin
	}
}

// Box is the geometry of a note box in page space.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Max width and height of a note box relative to its page.
const (
	MaxWidthFraction  = 0.4
	MaxHeightFraction = 0.3
)

// ClampBox limits a requested box size so a note never dominates its page.
func ClampBox(width, height, pageWidth, pageHeight float64) (float64, float64) {
	w := min(width, pageWidth*MaxWidthFraction)
	h := min(height, pageHeight*MaxHeightFraction)
	return max(w, 0), max(h, 0)
}

// PlaceNote clamps the requested size and anchors the box at pos.
func PlaceNote(pageWidth, pageHeight, width, height, margin float64, pos Position) Box {
	w, h := ClampBox(width, height, pageWidth, pageHeight)
	x, y := NoteOrigin(pageWidth, pageHeight, w, h, margin, pos)
	return Box{X: x, Y: y, Width: w, Height: h}
}
