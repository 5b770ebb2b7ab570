package code

import (
	"bytes"
	"image"
	stddraw "image/draw"

	"github.com/disintegration/imaging"
)

// EncodePNG serializes a raster for caching and embedding.
func EncodePNG(img *image.Gray) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePNG reads a raster written by EncodePNG.
func DecodePNG(data []byte) (*image.Gray, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if g, ok := img.(*image.Gray); ok {
		return g, nil
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	stddraw.Draw(g, g.Bounds(), img, b.Min, stddraw.Src)
	return g, nil
}
