// Package pipeline builds label documents from records.
//
// A build runs in two steps. The map step normalizes every record and
// rasterizes its code on a bounded pool of workers; rasters come from the
// cache when possible. The reduce step then walks the prepared labels in
// input order and places them with a single [sheet.Assembler], so the layout
// is the same as a strictly sequential build.
//
// Records that cannot be encoded are skipped and reported in
// [Result.Skipped]; the remaining labels close up without a gap. A layout
// overflow aborts the build before any label is placed.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{pipeline.FormatPDF, pipeline.FormatJSON}
//	result, err := runner.Execute(ctx, records, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Artifacts {
//	    os.WriteFile(a.Filename("labels"), a.Data, 0o644)
//	}
//
// Run the stages separately:
//
//	result, err := runner.Build(ctx, records, opts)
//	artifacts, err := runner.Render(ctx, result, opts)
package pipeline

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelsheet/pkg/code"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/label"
	"github.com/matzehuels/labelsheet/pkg/record"
	"github.com/matzehuels/labelsheet/pkg/render/sink"
	"github.com/matzehuels/labelsheet/pkg/sheet"
)

// =============================================================================
// Formats
// =============================================================================

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: pdf, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list. Empty input selects PDF.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{FormatPDF}
	}
	return out
}

// =============================================================================
// Options
// =============================================================================

// Options configures a build and its rendering.
type Options struct {
	Sheet  sheet.Config  `json:"sheet"`
	Code   code.Options  `json:"code"`
	Filter record.Filter `json:"-"`

	// Workers bounds the map step. Zero means GOMAXPROCS.
	Workers  int      `json:"workers,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`
	Title    string   `json:"title,omitempty"`

	// Refresh ignores cached rasters and overwrites them.
	Refresh bool `json:"-"`

	// Logger receives build events. Nil selects the runner's logger.
	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	o := Options{
		Sheet: sheet.DefaultConfig(),
		Code:  code.DefaultOptions(),
	}
	o.SetDefaults()
	return o
}

// SetDefaults fills zero-valued fields. The code raster side always follows
// the sheet's code_side_px.
func (o *Options) SetDefaults() {
	if o.Sheet == (sheet.Config{}) {
		o.Sheet = sheet.DefaultConfig()
	}
	o.Code.SidePx = o.Sheet.CodeSidePx
	o.Code.SetDefaults()
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if o.PNGScale == 0 {
		o.PNGScale = sink.DefaultScale
	}
}

// Validate checks every option group.
func (o *Options) Validate() error {
	if err := o.Sheet.Validate(); err != nil {
		return err
	}
	if err := o.Code.Validate(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "png_scale cannot be negative, got %v", o.PNGScale)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// =============================================================================
// Results
// =============================================================================

// Skipped describes an input record left out of the document.
type Skipped struct {
	Identifier string      `json:"identifier"`
	Index      int         `json:"index"`
	Code       errors.Code `json:"code"`
	Reason     string      `json:"reason"`
}

// Artifact is one rendered output file.
type Artifact struct {
	Format string
	// Page is the 1-based page of a PNG preview, zero for whole-document formats.
	Page int
	Data []byte
}

// Filename returns the file name of the artifact for a base name such as
// "labels": "labels.pdf", "labels-p2.png".
func (a Artifact) Filename(base string) string {
	if a.Page > 0 {
		return fmt.Sprintf("%s-p%d.%s", base, a.Page, a.Format)
	}
	return base + "." + a.Format
}

// Stats contains build statistics.
type Stats struct {
	Records    int
	Filtered   int
	Placed     int
	Skipped    int
	Pages      int
	CacheHits  int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// Result contains the outputs of a build.
type Result struct {
	// Document is the sealed layout.
	Document *sheet.Document
	// DocumentID is derived from the layout; equal layouts share an ID.
	DocumentID string

	Skipped   []Skipped
	Warnings  []label.Warning
	Artifacts []Artifact
	Stats     Stats
}

func (r *Result) sinkSkipped() []sink.JSONSkipped {
	out := make([]sink.JSONSkipped, len(r.Skipped))
	for i, s := range r.Skipped {
		out[i] = sink.JSONSkipped{Identifier: s.Identifier, Index: s.Index, Code: string(s.Code), Reason: s.Reason}
	}
	return out
}
