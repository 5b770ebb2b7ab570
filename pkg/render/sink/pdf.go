package sink

import (
	"bytes"
	"image"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/fonts"
	"github.com/matzehuels/labelsheet/pkg/sheet"
)

// darkThreshold is the gray level below which a code pixel prints dark.
const darkThreshold = 128

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	title   string
	creator string
	date    time.Time
}

// WithPDFTitle sets the document title metadata.
func WithPDFTitle(title string) PDFOption {
	return func(r *pdfRenderer) { r.title = title }
}

// WithPDFCreator sets the creator metadata, e.g. "labelsheet v1.2.0".
func WithPDFCreator(creator string) PDFOption {
	return func(r *pdfRenderer) { r.creator = creator }
}

// WithPDFDate sets the creation date. The default is the Unix epoch so that
// output is reproducible.
func WithPDFDate(t time.Time) PDFOption {
	return func(r *pdfRenderer) { r.date = t }
}

// RenderPDF renders the document in print units of millimetres.
func RenderPDF(doc *sheet.Document, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{date: time.Unix(0, 0).UTC()}
	for _, opt := range opts {
		opt(&r)
	}
	pdf, err := r.build(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return buf.Bytes(), nil
}

func (r pdfRenderer) build(doc *sheet.Document) (*fpdf.Fpdf, error) {
	if err := checkSealed(doc); err != nil {
		return nil, err
	}
	cfg := doc.Config()

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	pdf.SetCreationDate(r.date)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(0.5)
	if r.title != "" {
		pdf.SetTitle(r.title, true)
	}
	if r.creator != "" {
		pdf.SetCreator(r.creator, true)
	}
	pdf.AddUTF8FontFromBytes(fonts.Family, "", fonts.RegularTTF())
	pdf.SetFont(fonts.Family, "", cfg.FontSize)
	pdf.SetLineWidth(0.2)

	for _, page := range doc.Pages() {
		pdf.AddPage()
		for _, l := range page.Labels {
			if err := drawPDFLabel(pdf, l); err != nil {
				return nil, err
			}
		}
	}
	if err := pdf.Error(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build pdf")
	}
	return pdf, nil
}

func drawPDFLabel(pdf *fpdf.Fpdf, l sheet.Label) error {
	for _, e := range l.Elements {
		r := e.Rect
		switch e.Kind {
		case sheet.KindCode:
			if l.Code == nil {
				return errors.New(errors.ErrCodeInternal, "label %s has no code raster", l.Payload)
			}
			drawPDFCode(pdf, l.Code, r)

		case sheet.KindFrame:
			pdf.Rect(r.X, r.Y, r.W, r.H, "D")

		case sheet.KindCaption:
			pdf.SetFontSize(e.FontSize)
			// Rotated about the center, the cell swaps its width and height.
			cx, cy := r.CenterX(), r.CenterY()
			pdf.TransformBegin()
			pdf.TransformRotate(e.Rotation, cx, cy)
			pdf.SetXY(cx-r.H/2, cy-r.W/2)
			pdf.CellFormat(r.H, r.W, e.Text, border(e.Border), 0, "CM", false, 0, "")
			pdf.TransformEnd()

		case sheet.KindText:
			pdf.SetFontSize(e.FontSize)
			pdf.SetXY(r.X, r.Y)
			pdf.CellFormat(r.W, r.H, e.Text, border(e.Border), 0, "LM", false, 0, "")
		}
	}
	return pdf.Error()
}

// drawPDFCode fills the dark pixels of raster as vector rectangles inside r,
// one rectangle per horizontal run.
func drawPDFCode(pdf *fpdf.Fpdf, raster *image.Gray, r sheet.Rect) {
	b := raster.Bounds()
	if b.Empty() {
		return
	}
	px := r.W / float64(b.Dx())
	py := r.H / float64(b.Dy())
	pdf.SetFillColor(0, 0, 0)
	for _, run := range darkRuns(raster) {
		pdf.Rect(r.X+float64(run.x)*px, r.Y+float64(run.y)*py, float64(run.n)*px, py, "F")
	}
}

// pixelRun is a horizontal run of n dark pixels starting at (x, y), relative
// to the raster origin.
type pixelRun struct {
	x, y, n int
}

// darkRuns returns the dark pixel runs of img in row-major order.
func darkRuns(img *image.Gray) []pixelRun {
	b := img.Bounds()
	var runs []pixelRun
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start, in := 0, false
		for x := b.Min.X; x <= b.Max.X; x++ {
			dark := x < b.Max.X && img.GrayAt(x, y).Y < darkThreshold
			switch {
			case dark && !in:
				start, in = x, true
			case !dark && in:
				runs = append(runs, pixelRun{x: start - b.Min.X, y: y - b.Min.Y, n: x - start})
				in = false
			}
		}
	}
	return runs
}

func border(on bool) string {
	if on {
		return "1"
	}
	return ""
}
