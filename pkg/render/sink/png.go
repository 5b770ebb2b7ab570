package sink

import (
	"bytes"
	"context"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/fonts"
	"github.com/matzehuels/labelsheet/pkg/sheet"
)

// DefaultScale is the PNG resolution in pixels per print unit.
const DefaultScale = 4.0

const mmPerInch = 25.4

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale   float64
	workers int
}

// WithScale sets the resolution in pixels per print unit.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGWorkers limits how many pages are rendered at once.
func WithPNGWorkers(n int) PNGOption {
	return func(r *pngRenderer) { r.workers = n }
}

// RenderPNG renders one PNG image per page, in page order.
func RenderPNG(doc *sheet.Document, opts ...PNGOption) ([][]byte, error) {
	r := pngRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "png scale must be positive, got %v", r.scale)
	}
	if err := checkSealed(doc); err != nil {
		return nil, err
	}

	pages := doc.Pages()
	out := make([][]byte, len(pages))
	g, _ := errgroup.WithContext(context.Background())
	if r.workers > 0 {
		g.SetLimit(r.workers)
	}
	for i, p := range pages {
		g.Go(func() error {
			data, err := r.page(doc.Config(), p)
			if err != nil {
				return err
			}
			out[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r pngRenderer) page(cfg sheet.Config, p sheet.Page) ([]byte, error) {
	s := r.scale
	dc := gg.NewContext(int(cfg.PageWidth*s+0.5), int(cfg.PageHeight*s+0.5))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(max(1, 0.2*s))

	face, err := fonts.Face(cfg.FontSize, mmPerInch*s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
	}
	defer face.Close()
	dc.SetFontFace(face)

	for _, l := range p.Labels {
		for _, e := range l.Elements {
			x, y, w, h := e.Rect.X*s, e.Rect.Y*s, e.Rect.W*s, e.Rect.H*s
			switch e.Kind {
			case sheet.KindCode:
				if l.Code == nil {
					return nil, errors.New(errors.ErrCodeInternal, "label %s has no code raster", l.Payload)
				}
				side := int(w + 0.5)
				dc.DrawImage(scaleCode(l.Code, side), int(x+0.5), int(y+0.5))
			case sheet.KindFrame:
				dc.DrawRectangle(x, y, w, h)
				dc.Stroke()
			case sheet.KindCaption:
				if e.Border {
					dc.DrawRectangle(x, y, w, h)
					dc.Stroke()
				}
				cx, cy := x+w/2, y+h/2
				dc.Push()
				dc.RotateAbout(gg.Radians(-e.Rotation), cx, cy)
				dc.DrawStringAnchored(e.Text, cx, cy, 0.5, 0.35)
				dc.Pop()
			case sheet.KindText:
				if e.Border {
					dc.DrawRectangle(x, y, w, h)
					dc.Stroke()
				}
				dc.DrawStringAnchored(e.Text, x+0.5*s, y+h/2, 0, 0.35)
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode page %d", p.Number)
	}
	return buf.Bytes(), nil
}

// scaleCode enlarges a code raster with hard module edges.
func scaleCode(img *image.Gray, side int) image.Image {
	return imaging.Resize(img, side, side, imaging.NearestNeighbor)
}
