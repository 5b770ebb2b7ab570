package code

import (
	"image"
	"image/color"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/qr"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// Matrix is an encoded symbol: a grid of dark and light modules.
type Matrix struct {
	Cols, Rows int
	dark       []bool
}

// Dark reports whether the module at column x, row y is dark.
func (m Matrix) Dark(x, y int) bool {
	return m.dark[y*m.Cols+x]
}

// encode runs the symbology encoder for payload.
func encode(s Symbology, payload string) (Matrix, error) {
	var (
		bc  barcode.Barcode
		err error
	)
	switch s {
	case DataMatrix:
		bc, err = datamatrix.Encode(payload)
	case QR:
		bc, err = qr.Encode(payload, qr.M, qr.Auto)
	default:
		return Matrix{}, errors.New(errors.ErrCodeUnsupported, "symbology %q", s)
	}
	if err != nil {
		return Matrix{}, errors.Wrap(errors.ErrCodeEncoding, err, "encode %q as %s", payload, s)
	}
	return matrixFrom(bc), nil
}

// matrixFrom samples one pixel per module from an unscaled barcode image.
func matrixFrom(img image.Image) Matrix {
	b := img.Bounds()
	m := Matrix{Cols: b.Dx(), Rows: b.Dy(), dark: make([]bool, b.Dx()*b.Dy())}
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			m.dark[y*m.Cols+x] = g.Y < 128
		}
	}
	return m
}
