package sink

import (
	"encoding/json"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/sheet"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	id      string
	skipped []JSONSkipped
}

// JSONSkipped records one input record left out of the document.
type JSONSkipped struct {
	Identifier string `json:"identifier"`
	Index      int    `json:"index"`
	Code       string `json:"code"`
	Reason     string `json:"reason"`
}

// WithJSONDocumentID records the document ID in the output.
func WithJSONDocumentID(id string) JSONOption {
	return func(r *jsonRenderer) { r.id = id }
}

// WithJSONSkipped lists skipped records in the output.
func WithJSONSkipped(s []JSONSkipped) JSONOption {
	return func(r *jsonRenderer) { r.skipped = s }
}

type jsonOutput struct {
	ID      string        `json:"id,omitempty"`
	Unit    string        `json:"unit"`
	Config  sheet.Config  `json:"config"`
	Labels  int           `json:"labels"`
	Pages   []sheet.Page  `json:"pages"`
	Skipped []JSONSkipped `json:"skipped,omitempty"`
}

// RenderJSON exports the layout geometry of every placed label.
func RenderJSON(doc *sheet.Document, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	if err := checkSealed(doc); err != nil {
		return nil, err
	}

	out := jsonOutput{
		ID:      r.id,
		Unit:    "mm",
		Config:  doc.Config(),
		Labels:  doc.Len(),
		Pages:   doc.Pages(),
		Skipped: r.skipped,
	}
	for i := range out.Pages {
		if out.Pages[i].Labels == nil {
			out.Pages[i].Labels = []sheet.Label{}
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return append(data, '\n'), nil
}
