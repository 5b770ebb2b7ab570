package sheet

import (
	"image"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// Kind identifies what an Element draws.
type Kind string

const (
	KindCode    Kind = "code"
	KindFrame   Kind = "frame"
	KindCaption Kind = "caption"
	KindText    Kind = "text"
)

// Element is one positioned drawing primitive of a label.
type Element struct {
	Kind Kind `json:"kind"`
	Rect Rect `json:"rect"`

	// Text is set for caption and text elements.
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
	// Rotation is counter-clockwise in degrees around the rect center.
	Rotation float64 `json:"rotation,omitempty"`
	// Border requests an outline around the rect.
	Border bool `json:"border,omitempty"`
}

// Label is one placed label.
type Label struct {
	Payload  string    `json:"payload"`
	Page     int       `json:"page"`
	Column   int       `json:"column"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Elements []Element `json:"elements"`

	// Code is the raster drawn by the KindCode element.
	Code *image.Gray `json:"-"`
}

// Bounds returns the smallest rect enclosing every element of the label.
func (l Label) Bounds() Rect {
	if len(l.Elements) == 0 {
		return Rect{X: l.X, Y: l.Y}
	}
	r := l.Elements[0].Rect
	x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()
	for _, e := range l.Elements[1:] {
		x0 = min(x0, e.Rect.X)
		y0 = min(y0, e.Rect.Y)
		x1 = max(x1, e.Rect.Right())
		y1 = max(y1, e.Rect.Bottom())
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Page holds the labels of one sheet in placement order.
type Page struct {
	Number int     `json:"number"`
	Labels []Label `json:"labels"`
}

// Document is the in-memory multi-page layout of one build.
// Once sealed it is read-only.
type Document struct {
	cfg    Config
	pages  []*Page
	sealed bool
}

// NewDocument creates a document with one empty page.
func NewDocument(cfg Config) *Document {
	return &Document{cfg: cfg, pages: []*Page{{Number: 1}}}
}

// Config returns the layout the document was built with.
func (d *Document) Config() Config { return d.cfg }

// Sealed reports whether the document accepts no further labels.
func (d *Document) Sealed() bool { return d.sealed }

// Seal finalizes the document.
func (d *Document) Seal() { d.sealed = true }

// NumPages returns the number of pages, including a trailing empty page.
func (d *Document) NumPages() int { return len(d.pages) }

// Len returns the number of placed labels.
func (d *Document) Len() int {
	n := 0
	for _, p := range d.pages {
		n += len(p.Labels)
	}
	return n
}

// Pages returns the pages in order. The slice is a copy; labels are shared.
func (d *Document) Pages() []Page {
	out := make([]Page, len(d.pages))
	for i, p := range d.pages {
		out[i] = *p
	}
	return out
}

// Labels returns every placed label in placement order.
func (d *Document) Labels() []Label {
	out := make([]Label, 0, d.Len())
	for _, p := range d.pages {
		out = append(out, p.Labels...)
	}
	return out
}

// Add appends l to page l.Page, starting new pages as needed.
// Labels may not go to a page before the last one.
func (d *Document) Add(l Label) error {
	if d.sealed {
		return errors.New(errors.ErrCodeSealed, "document is sealed, cannot add label %s", l.Payload)
	}
	if l.Page < len(d.pages) {
		return errors.New(errors.ErrCodeInternal, "label %s targets page %d, document is on page %d", l.Payload, l.Page, len(d.pages))
	}
	for len(d.pages) < l.Page {
		d.pages = append(d.pages, &Page{Number: len(d.pages) + 1})
	}
	p := d.pages[l.Page-1]
	p.Labels = append(p.Labels, l)
	return nil
}
