// Package fonts provides the label typeface.
//
// Labels are set in Go Regular, which ships with golang.org/x/image, so no
// font file has to be installed on the printing machine.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Family is the font family name registered with the PDF writer.
const Family = "goregular"

// RegularTTF returns the TrueType data of Go Regular.
func RegularTTF() []byte {
	return goregular.TTF
}

var (
	parsed    *truetype.Font
	parseErr  error
	parseOnce sync.Once
)

// Regular returns the parsed font. The result is cached after the first call.
func Regular() (*truetype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = truetype.Parse(goregular.TTF)
	})
	return parsed, parseErr
}

// Face returns a face of Go Regular at size points for the given resolution.
func Face(size, dpi float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: dpi, Hinting: font.HintingNone}), nil
}
