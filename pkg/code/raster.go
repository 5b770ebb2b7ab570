package code

import (
	"image"
	"image/color"
	stddraw "image/draw"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// Rasterizer turns payloads into code rasters.
type Rasterizer struct {
	opts Options
}

// NewRasterizer validates opts (after applying defaults) and returns a
// Rasterizer.
func NewRasterizer(opts Options) (*Rasterizer, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Rasterizer{opts: opts}, nil
}

// Options returns the effective options.
func (r *Rasterizer) Options() Options { return r.opts }

// MaxModules returns the largest symbol side, in modules, that a raster of
// sidePx pixels still resolves (1.5 pixels per module).
func MaxModules(sidePx int) int { return sidePx * 2 / 3 }

// Rasterize encodes payload and returns a SidePx x SidePx gray raster.
// A payload whose symbol is larger than MaxModules(SidePx) is an
// ENCODING_ERROR.
func (r *Rasterizer) Rasterize(payload string) (*image.Gray, error) {
	if err := errors.ValidatePayload(payload); err != nil {
		return nil, err
	}
	m, err := encode(r.opts.Symbology, payload)
	if err != nil {
		return nil, err
	}
	if limit := MaxModules(r.opts.SidePx); m.Cols > limit || m.Rows > limit {
		return nil, errors.Encoding("payload of %d characters needs a %dx%d symbol, a %d px code resolves at most %dx%d",
			len(payload), m.Cols, m.Rows, r.opts.SidePx, limit, limit)
	}
	raw := RenderRaw(m, r.opts.ModulePx, r.opts.MarginPx)
	core := Crop(raw, r.opts.MarginPx)
	return Resample(core, r.opts.SidePx, r.opts.Filter), nil
}

// RenderRaw draws m with modulePx pixels per module inside a white margin
// of marginPx pixels on each side.
func RenderRaw(m Matrix, modulePx, marginPx int) *image.Gray {
	w := m.Cols*modulePx + 2*marginPx
	h := m.Rows*modulePx + 2*marginPx
	img := image.NewGray(image.Rect(0, 0, w, h))
	stddraw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, stddraw.Src)

	black := image.NewUniform(color.Black)
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			if !m.Dark(x, y) {
				continue
			}
			px := marginPx + x*modulePx
			py := marginPx + y*modulePx
			stddraw.Draw(img, image.Rect(px, py, px+modulePx, py+modulePx), black, image.Point{}, stddraw.Src)
		}
	}
	return img
}

// Crop strips a fixed inset from every side of img.
func Crop(img image.Image, inset int) image.Image {
	b := img.Bounds()
	return imaging.Crop(img, image.Rect(b.Min.X+inset, b.Min.Y+inset, b.Max.X-inset, b.Max.Y-inset))
}

// Resample resizes img to side x side pixels with filter and converts the
// result to gray.
func Resample(img image.Image, side int, filter Filter) *image.Gray {
	var scaled image.Image
	switch filter {
	case CatmullRom:
		dst := image.NewRGBA(image.Rect(0, 0, side, side))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		scaled = dst
	case Nearest:
		scaled = imaging.Resize(img, side, side, imaging.NearestNeighbor)
	default:
		scaled = imaging.Resize(img, side, side, imaging.Lanczos)
	}

	gray := image.NewGray(image.Rect(0, 0, side, side))
	stddraw.Draw(gray, gray.Bounds(), scaled, scaled.Bounds().Min, stddraw.Src)
	return gray
}
