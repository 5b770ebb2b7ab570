package label

import (
	"image"
	"testing"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

func TestPhysicalSide(t *testing.T) {
	tests := []struct {
		px   int
		ppu  float64
		want float64
	}{
		{30, 2.7, 11},
		{27, 2.7, 10},
		{60, 3, 20},
		{30, 0, 0},
	}
	for _, tt := range tests {
		if got := PhysicalSide(tt.px, tt.ppu); got != tt.want {
			t.Errorf("PhysicalSide(%d, %v) = %v, want %v", tt.px, tt.ppu, got, tt.want)
		}
	}
}

func TestAssemble(t *testing.T) {
	lines := []string{"L. lesliei", "v. albinica"}
	c, err := Assemble(Content{Payload: "1", Lines: lines}, image.NewGray(image.Rect(0, 0, 30, 30)), 2.7)
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if c.CodeSide != 11 {
		t.Errorf("CodeSide = %v, want 11", c.CodeSide)
	}
	if c.Height() != 11 {
		t.Errorf("Height() = %v, want 11", c.Height())
	}
	if c.LineHeight() != 5.5 {
		t.Errorf("LineHeight() = %v, want 5.5", c.LineHeight())
	}

	lines[0] = "changed"
	if c.Lines[0] != "L. lesliei" {
		t.Error("Assemble() must copy the lines")
	}
}

func TestAssembleLineHeightFillsCode(t *testing.T) {
	for n := 1; n <= MaxLines; n++ {
		lines := make([]string, n)
		for i := range lines {
			lines[i] = "x"
		}
		c, err := Assemble(Content{Payload: "1", Lines: lines}, image.NewGray(image.Rect(0, 0, 30, 30)), 2.7)
		if err != nil {
			t.Fatalf("Assemble() error: %v", err)
		}
		if got := c.LineHeight() * float64(n); got != c.CodeSide {
			t.Errorf("%d lines fill %v, want %v", n, got, c.CodeSide)
		}
	}
}

func TestAssembleErrors(t *testing.T) {
	square := image.NewGray(image.Rect(0, 0, 30, 30))
	tests := []struct {
		name   string
		c      Content
		raster *image.Gray
		ppu    float64
		code   errors.Code
	}{
		{"nil raster", Content{Lines: []string{"x"}}, nil, 2.7, errors.ErrCodeEncoding},
		{"not square", Content{Lines: []string{"x"}}, image.NewGray(image.Rect(0, 0, 30, 20)), 2.7, errors.ErrCodeInternal},
		{"no lines", Content{}, square, 2.7, errors.ErrCodeInternal},
		{"too many lines", Content{Lines: []string{"a", "b", "c", "d"}}, square, 2.7, errors.ErrCodeInternal},
		{"zero side", Content{Lines: []string{"x"}}, square, 100, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(tt.c, tt.raster, tt.ppu)
			if !errors.Is(err, tt.code) {
				t.Errorf("Assemble() error = %v, want code %v", err, tt.code)
			}
		})
	}
}
