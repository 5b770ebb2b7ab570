package sheet

import (
	"github.com/matzehuels/labelsheet/pkg/label"
)

// Assembler is the serial reduce of a build: it owns the cursor and the
// document and places labels one at a time in input order.
type Assembler struct {
	cfg    Config
	cursor *Cursor
	placer *Placer
	doc    *Document
}

// NewAssembler validates cfg and starts an empty document.
// It fails with a layout overflow when a label of cfg.LabelHeight cannot
// fit in an empty column.
func NewAssembler(cfg Config) (*Assembler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.CheckFits(cfg.LabelHeight()); err != nil {
		return nil, err
	}
	return &Assembler{
		cfg:    cfg,
		cursor: NewCursor(cfg),
		placer: NewPlacer(cfg),
		doc:    NewDocument(cfg),
	}, nil
}

// Add places c below the previous label, moving to the next column or page
// as needed.
func (a *Assembler) Add(c label.Content) (Label, Transition, error) {
	t, err := a.cursor.Reserve(c.Height())
	if err != nil {
		return Label{}, t, err
	}
	l, err := a.placer.Place(a.doc, a.cursor, c)
	return l, t, err
}

// Cursor exposes the layout state for inspection.
func (a *Assembler) Cursor() *Cursor { return a.cursor }

// Finish seals and returns the document. The assembler must not be used
// afterwards.
func (a *Assembler) Finish() *Document {
	a.doc.Seal()
	return a.doc
}
