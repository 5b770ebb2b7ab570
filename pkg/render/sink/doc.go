// Package sink renders sealed label documents to PDF, PNG and JSON.
//
// Every renderer takes a [sheet.Document] and functional options:
//
//	pdf, err := sink.RenderPDF(doc, sink.WithPDFTitle("Greenhouse 3"))
//	pages, err := sink.RenderPNG(doc, sink.WithScale(4))
//	js, err := sink.RenderJSON(doc, sink.WithJSONDocumentID(id))
//
// Output is deterministic: the same document renders to the same bytes.
// The PDF creation date is fixed for that reason unless overridden with
// [WithPDFDate].
//
// [sheet.Document]: github.com/matzehuels/labelsheet/pkg/sheet
package sink

import (
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/sheet"
)

func checkSealed(doc *sheet.Document) error {
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil document")
	}
	if !doc.Sealed() {
		return errors.New(errors.ErrCodeInternal, "document must be sealed before rendering")
	}
	return nil
}
