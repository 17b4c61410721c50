package render

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Composer merges rendered pages into the source document.
type Composer interface {
	// Stamp paints overlays[n], the path of a one-page PDF, on top of page n
	// of src and writes the resulting document to w.
	Stamp(src io.ReadSeeker, overlays map[int]string, w io.Writer) error

	// Append writes doc followed by all pages of extra to w.
	Append(doc, extra io.ReadSeeker, w io.Writer) error
}

// The overlay has the size of the page it is stamped on, so it is placed
// unscaled at the page origin.
const overlayStamp = "position:bl, offset:0 0, scalefactor:1 abs, rotation:0"

// PDFCPU composes pages with pdfcpu.
type PDFCPU struct {
	Conf *model.Configuration
}

func NewPDFCPU() *PDFCPU {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPU{Conf: conf}
}

func (c *PDFCPU) Stamp(src io.ReadSeeker, overlays map[int]string, w io.Writer) error {
	m := make(map[int]*model.Watermark, len(overlays))
	for page, path := range overlays {
		wm, err := api.PDFWatermark(path+":1", overlayStamp, true, false, types.POINTS)
		if err != nil {
			return fmt.Errorf("overlay for page %d: %w", page, err)
		}
		m[page] = wm
	}
	if err := api.AddWatermarksMap(src, w, m, c.Conf); err != nil {
		return fmt.Errorf("stamp overlays: %w", err)
	}
	return nil
}

func (c *PDFCPU) Append(doc, extra io.ReadSeeker, w io.Writer) error {
	if err := api.MergeRaw([]io.ReadSeeker{doc, extra}, w, false, c.Conf); err != nil {
		return fmt.Errorf("append pages: %w", err)
	}
	return nil
}
