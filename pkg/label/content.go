package label

import (
	"image"
	"math"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// Content is everything needed to place one label.
// Values returned by Assemble must not be modified.
type Content struct {
	Payload     string
	FieldNumber string
	Lines       []string

	// Code is the square code raster, CodeSidePx pixels wide.
	Code *image.Gray
	// CodeSide is the printed side length of Code in print units.
	CodeSide float64
}

// Height is the vertical extent of the label in print units.
// Caption and text stack share the height of the code.
func (c Content) Height() float64 { return c.CodeSide }

// LineHeight is the height of one text line, chosen so the stack of lines
// exactly fills the code height.
func (c Content) LineHeight() float64 {
	if len(c.Lines) == 0 {
		return c.CodeSide
	}
	return c.CodeSide / float64(len(c.Lines))
}

// PhysicalSide converts a raster side in pixels to whole print units.
// The fractional part is dropped: 30 px at 2.7 px/mm print as 11 mm.
func PhysicalSide(px int, pixelsPerUnit float64) float64 {
	if pixelsPerUnit <= 0 {
		return 0
	}
	return math.Floor(float64(px) / pixelsPerUnit)
}

// Assemble combines normalized content with its code raster.
// The raster must be square; its physical side is derived from
// pixelsPerUnit. The returned Content owns a private copy of the lines.
func Assemble(c Content, raster *image.Gray, pixelsPerUnit float64) (Content, error) {
	if raster == nil {
		return Content{}, errors.New(errors.ErrCodeEncoding, "record %s: missing code raster", c.Payload)
	}
	b := raster.Bounds()
	if b.Dx() != b.Dy() || b.Dx() == 0 {
		return Content{}, errors.New(errors.ErrCodeInternal, "record %s: code raster is %dx%d, want square", c.Payload, b.Dx(), b.Dy())
	}
	if len(c.Lines) == 0 || len(c.Lines) > MaxLines {
		return Content{}, errors.New(errors.ErrCodeInternal, "record %s: %d text lines, want 1..%d", c.Payload, len(c.Lines), MaxLines)
	}
	side := PhysicalSide(b.Dx(), pixelsPerUnit)
	if side <= 0 {
		return Content{}, errors.New(errors.ErrCodeInvalidConfig, "code side of %d px at %.2f px/unit prints as zero units", b.Dx(), pixelsPerUnit)
	}

	c.Lines = append([]string(nil), c.Lines...)
	c.Code = raster
	c.CodeSide = side
	return c, nil
}
