package sheet

import (
	"testing"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

func TestCursorStart(t *testing.T) {
	c := NewCursor(DefaultConfig())
	if c.X() != 10 || c.Y() != 10 || c.Column() != 1 || c.Pages() != 1 {
		t.Errorf("start = (%v, %v, col %d, pages %d), want (10, 10, col 1, pages 1)", c.X(), c.Y(), c.Column(), c.Pages())
	}
}

func TestCursorFlow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PageHeight = 100
	c := NewCursor(cfg)

	want := []struct {
		t      Transition
		x, y   float64
		column int
		pages  int
	}{
		{Stay, 10, 10, 1, 1},
		{Stay, 10, 41, 1, 1},
		{Stay, 10, 72, 1, 1},
		{NextColumn, 100, 10, 2, 1},
		{Stay, 100, 41, 2, 1},
		{Stay, 100, 72, 2, 1},
		{NextPage, 10, 10, 1, 2},
	}
	for i, w := range want {
		tr, err := c.Reserve(11)
		if err != nil {
			t.Fatalf("label %d: Reserve() error: %v", i, err)
		}
		if tr != w.t || c.X() != w.x || c.Y() != w.y || c.Column() != w.column || c.Pages() != w.pages {
			t.Errorf("label %d: got (%s, %v, %v, col %d, pages %d), want (%s, %v, %v, col %d, pages %d)",
				i, tr, c.X(), c.Y(), c.Column(), c.Pages(), w.t, w.x, w.y, w.column, w.pages)
		}
		c.Advance(11, c.X()+17)
	}
}

func TestCursorBoundary(t *testing.T) {
	tests := []struct {
		name string
		gap  float64
		want Transition
	}{
		// second label at y = 79: (100 - 79) - 11 = 10, exactly the clearance
		{"exact clearance stays", 58, Stay},
		{"one unit short moves", 59, NextColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.PageHeight = 100
			cfg.VerticalGap = tt.gap
			c := NewCursor(cfg)
			if _, err := c.Reserve(11); err != nil {
				t.Fatal(err)
			}
			c.Advance(11, c.X())
			got, err := c.Reserve(11)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Reserve() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCursorOverflow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PageHeight = 30
	c := NewCursor(cfg)
	_, err := c.Reserve(11)
	if !errors.IsLayoutOverflow(err) {
		t.Fatalf("Reserve() = %v, want layout overflow", err)
	}
	if c.Pages() != 1 || c.Column() != 1 || c.Y() != 10 {
		t.Error("failed Reserve() must not move the cursor")
	}
}

func TestCursorInvariants(t *testing.T) {
	cfg := DefaultConfig()
	c := NewCursor(cfg)
	pages, column := c.Pages(), c.Column()
	for i := 0; i < 100; i++ {
		prevY := c.Y()
		tr, err := c.Reserve(11)
		if err != nil {
			t.Fatal(err)
		}
		switch tr {
		case Stay:
			if c.Y() != prevY || c.Column() != column || c.Pages() != pages {
				t.Fatalf("label %d: Stay moved the cursor", i)
			}
		case NextColumn:
			if c.Y() != cfg.TopMargin || column != 1 || c.Column() != 2 || c.Pages() != pages {
				t.Fatalf("label %d: bad column transition", i)
			}
		case NextPage:
			if c.Y() != cfg.TopMargin || column != 2 || c.Column() != 1 || c.Pages() != pages+1 {
				t.Fatalf("label %d: bad page transition", i)
			}
		}
		if c.Y() < cfg.TopMargin || (cfg.PageHeight-c.Y())-11 < cfg.MinClearance {
			t.Fatalf("label %d at y=%v outside printable area", i, c.Y())
		}
		if c.X() != cfg.ColumnX(c.Column()) {
			t.Fatalf("label %d: x=%v, want column origin %v", i, c.X(), cfg.ColumnX(c.Column()))
		}
		pages, column = c.Pages(), c.Column()
		c.Advance(11, c.X())
	}
	// 9 labels per column, 18 per page
	if c.Pages() != 6 {
		t.Errorf("Pages() = %d after 100 labels, want 6", c.Pages())
	}
}
