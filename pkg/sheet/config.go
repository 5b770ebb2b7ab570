package sheet

import (
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/label"
)

// Config holds the layout contract of a sheet. All lengths are in print
// units (millimetres for the PDF sink).
type Config struct {
	PageWidth  float64 `toml:"page_width" json:"page_width"`
	PageHeight float64 `toml:"page_height" json:"page_height"`

	TopMargin    float64 `toml:"top_margin" json:"top_margin"`
	LeftMargin   float64 `toml:"left_margin" json:"left_margin"`
	ColumnOffset float64 `toml:"column_offset" json:"column_offset"`
	MinClearance float64 `toml:"min_clearance" json:"min_clearance"`

	LabelLength  float64 `toml:"label_length" json:"label_length"`
	VerticalGap  float64 `toml:"vertical_gap" json:"vertical_gap"`
	CaptionWidth float64 `toml:"caption_width" json:"caption_width"`
	FrameGap     float64 `toml:"frame_gap" json:"frame_gap"`

	CodeSidePx    int     `toml:"code_side_px" json:"code_side_px"`
	PixelsPerUnit float64 `toml:"pixels_per_unit" json:"pixels_per_unit"`

	FontSize    float64 `toml:"font_size" json:"font_size"`
	ShowBorders bool    `toml:"show_borders" json:"show_borders"`

	SubspeciesGate string `toml:"subspecies_gate" json:"subspecies_gate"`
}

// DefaultConfig returns the A4 layout the labels were designed for.
func DefaultConfig() Config {
	return Config{
		PageWidth:      210,
		PageHeight:     297,
		TopMargin:      10,
		LeftMargin:     10,
		ColumnOffset:   90,
		MinClearance:   10,
		LabelLength:    80,
		VerticalGap:    20,
		CaptionWidth:   6,
		FrameGap:       1,
		CodeSidePx:     30,
		PixelsPerUnit:  2.7,
		FontSize:       8,
		SubspeciesGate: label.GateSpecies.String(),
	}
}

// CodeSide returns the printed side length of the code.
func (c Config) CodeSide() float64 {
	return label.PhysicalSide(c.CodeSidePx, c.PixelsPerUnit)
}

// LabelHeight returns the height the cursor reserves per label.
//
// The reservation is the printed code side (11 units at the defaults), not
// the raster side in pixels (30), so a default page holds 9 labels per
// column rather than 8.
func (c Config) LabelHeight() float64 { return c.CodeSide() }

// ColumnX returns the origin x of column (1 or 2).
func (c Config) ColumnX(column int) float64 {
	if column == 2 {
		return c.LeftMargin + c.ColumnOffset
	}
	return c.LeftMargin
}

// Usable returns the height available below the top margin of a page.
func (c Config) Usable() float64 { return c.PageHeight - c.TopMargin }

// Gate returns the parsed subspecies gate.
func (c Config) Gate() (label.Gate, error) { return label.ParseGate(c.SubspeciesGate) }

// CheckFits reports a LayoutOverflowError if a label of the given height
// cannot fit even at the top of an empty column.
func (c Config) CheckFits(height float64) error {
	if c.Usable()-height < c.MinClearance {
		return &errors.LayoutOverflowError{LabelHeight: height, Usable: c.Usable(), MinClearance: c.MinClearance}
	}
	return nil
}

// Validate checks the configuration for values no layout can work with.
// It does not check label overflow; see CheckFits.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"page_width", c.PageWidth},
		{"page_height", c.PageHeight},
		{"label_length", c.LabelLength},
		{"pixels_per_unit", c.PixelsPerUnit},
		{"font_size", c.FontSize},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %v", p.name, p.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"top_margin", c.TopMargin},
		{"left_margin", c.LeftMargin},
		{"column_offset", c.ColumnOffset},
		{"min_clearance", c.MinClearance},
		{"vertical_gap", c.VerticalGap},
		{"caption_width", c.CaptionWidth},
		{"frame_gap", c.FrameGap},
	}
	for _, p := range nonNegative {
		if p.v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s cannot be negative, got %v", p.name, p.v)
		}
	}

	if c.CodeSidePx < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "code_side_px must be positive, got %d", c.CodeSidePx)
	}
	side := c.CodeSide()
	if side <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "code of %d px at %v px/unit prints as zero units", c.CodeSidePx, c.PixelsPerUnit)
	}
	if c.LabelLength < side+c.CaptionWidth {
		return errors.New(errors.ErrCodeInvalidConfig, "label_length %v leaves no room for text after code (%v) and caption (%v)", c.LabelLength, side, c.CaptionWidth)
	}

	width := c.LabelLength + c.FrameGap
	if c.ColumnOffset < width {
		return errors.New(errors.ErrCodeInvalidConfig, "column_offset %v is narrower than a label (%v)", c.ColumnOffset, width)
	}
	if right := c.ColumnX(2) + width; right > c.PageWidth {
		return errors.New(errors.ErrCodeInvalidConfig, "column 2 ends at %v, beyond page width %v", right, c.PageWidth)
	}

	if _, err := c.Gate(); err != nil {
		return err
	}
	return nil
}
