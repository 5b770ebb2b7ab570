package sheet

// Transition describes how the cursor moved to make room for a label.
type Transition int

const (
	Stay       Transition = iota // same column, below the previous label
	NextColumn                   // top of column 2 on the same page
	NextPage                     // top of column 1 on a new page
)

func (t Transition) String() string {
	switch t {
	case NextColumn:
		return "next-column"
	case NextPage:
		return "next-page"
	}
	return "stay"
}

// Cursor is the page flow state of one document build.
//
// Page count only grows, the column only toggles between 1 and 2, and y is
// reset to the top margin exactly when the column or page changes. Between
// Advance and the next Reserve, y may point below the page; Reserve moves it
// back before anything is drawn.
type Cursor struct {
	cfg    Config
	x, y   float64
	column int
	pages  int
}

// NewCursor places a cursor at the top of column 1 on page 1.
func NewCursor(cfg Config) *Cursor {
	return &Cursor{
		cfg:    cfg,
		x:      cfg.ColumnX(1),
		y:      cfg.TopMargin,
		column: 1,
		pages:  1,
	}
}

// X returns the current x position.
func (c *Cursor) X() float64 { return c.x }

// Y returns the current y position.
func (c *Cursor) Y() float64 { return c.y }

// Column returns the current column, 1 or 2.
func (c *Cursor) Column() int { return c.column }

// Pages returns the number of pages started so far.
func (c *Cursor) Pages() int { return c.pages }

// Remaining returns the vertical space between y and the page bottom.
func (c *Cursor) Remaining() float64 { return c.cfg.PageHeight - c.y }

// Fits reports whether a label of height h fits at the current y.
func (c *Cursor) Fits(h float64) bool {
	return c.Remaining()-h >= c.cfg.MinClearance
}

// Reserve positions the cursor for a label of height h, moving to the next
// column or page when the label does not fit below y. It fails with a
// layout overflow when no column could ever hold the label.
func (c *Cursor) Reserve(h float64) (Transition, error) {
	if err := c.cfg.CheckFits(h); err != nil {
		return Stay, err
	}

	t := Stay
	if !c.Fits(h) {
		c.y = c.cfg.TopMargin
		if c.column == 2 {
			c.pages++
			c.column = 1
			t = NextPage
		} else {
			c.column = 2
			t = NextColumn
		}
	}
	c.x = c.cfg.ColumnX(c.column)
	return t, nil
}

// Advance moves y below a placed label of height h and records x, the
// drawing position the placement ended at.
func (c *Cursor) Advance(h, x float64) {
	c.y += h + c.cfg.VerticalGap
	c.x = x
}
