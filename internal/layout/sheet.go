package layout

// Summary page metrics, in points.
const (
	sheetLeft         = 40.0
	sheetIndent       = 48.0
	sheetBottom       = 40.0
	sheetHeadingSize  = 16.0
	sheetSectionSize  = 11.0
	sheetBodySize     = 10.0
	sheetBodyLeading  = 12.0
	sheetSectionGap   = 16.0
	sheetSentenceGap  = 4.0
	sheetSectionBreak = 8.0
)

const bullet = "• "

// SummarySheet lays out the standalone summary page in page coordinates:
// a heading, the overall summary as wrapped bullets and the key points.
// Lines that would fall below the bottom margin are dropped.
func SummarySheet(pageWidth, pageHeight float64, overall, keyPoints []string) []Line {
	s := sheet{bottom: sheetBottom}
	s.add(Line{Text: "Document Summary", X: sheetLeft, Y: pageHeight - 60, Size: sheetHeadingSize, Bold: true})

	y := pageHeight - 90
	s.add(Line{Text: "Overall Summary", X: sheetLeft, Y: y, Size: sheetSectionSize, Bold: true})
	y -= sheetSectionGap
	width := CharsPerLine(pageWidth-sheetIndent-sheetLeft, sheetBodySize, sheetAdvance)
	for _, sentence := range overall {
		for _, text := range Wrap(bullet+sentence, width) {
			s.add(Line{Text: text, X: sheetIndent, Y: y, Size: sheetBodySize})
			y -= sheetBodyLeading
		}
		y -= sheetSentenceGap
	}

	y -= sheetSectionBreak
	s.add(Line{Text: "Key Points", X: sheetLeft, Y: y, Size: sheetSectionSize, Bold: true})
	y -= sheetSectionGap
	for _, keyword := range keyPoints {
		s.add(Line{Text: bullet + keyword, X: sheetIndent, Y: y, Size: sheetBodySize})
		y -= sheetBodyLeading
	}
	return s.lines
}

type sheet struct {
	lines   []Line
	bottom  float64
	clipped bool
}

// add appends l unless an earlier line already ran off the page.
func (s *sheet) add(l Line) {
	if s.clipped || l.Y < s.bottom {
		s.clipped = true
		return
	}
	s.lines = append(s.lines, l)
}
