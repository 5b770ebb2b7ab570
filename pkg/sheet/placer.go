package sheet

import (
	"github.com/matzehuels/labelsheet/pkg/label"
)

// Placer draws label content at the cursor position.
type Placer struct {
	cfg Config
}

// NewPlacer returns a placer for the given layout.
func NewPlacer(cfg Config) *Placer { return &Placer{cfg: cfg} }

// Layout computes the elements of a label whose top-left corner is (x, y).
// The second return value is the x position drawing ended at, the start of
// the text column.
func (p *Placer) Layout(c label.Content, x, y float64) ([]Element, float64) {
	s := c.CodeSide
	cfg := p.cfg

	els := make([]Element, 0, 3+len(c.Lines))
	els = append(els,
		Element{Kind: KindCode, Rect: Rect{X: x, Y: y, W: s, H: s}},
		Element{Kind: KindFrame, Rect: Rect{X: x + s + cfg.FrameGap, Y: y, W: cfg.LabelLength - s, H: s}, Border: true},
	)

	x += s
	els = append(els, Element{
		Kind:     KindCaption,
		Rect:     Rect{X: x, Y: y, W: cfg.CaptionWidth, H: s},
		Text:     c.FieldNumber,
		FontSize: cfg.FontSize,
		Rotation: 90,
		Border:   cfg.ShowBorders,
	})

	x += cfg.CaptionWidth
	lh := c.LineHeight()
	w := cfg.LabelLength - s - cfg.CaptionWidth
	for i, line := range c.Lines {
		els = append(els, Element{
			Kind:     KindText,
			Rect:     Rect{X: x, Y: y + float64(i)*lh, W: w, H: lh},
			Text:     line,
			FontSize: cfg.FontSize,
			Border:   cfg.ShowBorders,
		})
	}
	return els, x
}

// Place draws c at the current cursor position, adds it to doc and advances
// the cursor. Call Cursor.Reserve first.
func (p *Placer) Place(doc *Document, cur *Cursor, c label.Content) (Label, error) {
	els, endX := p.Layout(c, cur.X(), cur.Y())
	l := Label{
		Payload:  c.Payload,
		Page:     cur.Pages(),
		Column:   cur.Column(),
		X:        cur.X(),
		Y:        cur.Y(),
		Elements: els,
		Code:     c.Code,
	}
	if err := doc.Add(l); err != nil {
		return Label{}, err
	}
	cur.Advance(c.Height(), endX)
	return l, nil
}
