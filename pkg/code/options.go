package code

import (
	"fmt"
	"strings"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// Symbology is a machine-readable code family.
type Symbology string

const (
	DataMatrix Symbology = "datamatrix"
	QR         Symbology = "qr"
)

// Filter is a resampling filter name.
type Filter string

const (
	Lanczos    Filter = "lanczos"
	CatmullRom Filter = "catmullrom"
	Nearest    Filter = "nearest"
)

// Default values, matching the label sheet design.
const (
	DefaultModulePx = 5
	DefaultMarginPx = 10
	DefaultSidePx   = 30
)

// Options configures a Rasterizer.
type Options struct {
	Symbology Symbology `toml:"symbology" json:"symbology"`
	ModulePx  int       `toml:"module_px" json:"module_px"`
	MarginPx  int       `toml:"margin_px" json:"margin_px"`
	SidePx    int       `toml:"-" json:"side_px"`
	Filter    Filter    `toml:"filter" json:"filter"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Symbology: DataMatrix,
		ModulePx:  DefaultModulePx,
		MarginPx:  DefaultMarginPx,
		SidePx:    DefaultSidePx,
		Filter:    Lanczos,
	}
}

// SetDefaults fills zero-valued fields with defaults.
func (o *Options) SetDefaults() {
	d := DefaultOptions()
	if o.Symbology == "" {
		o.Symbology = d.Symbology
	}
	if o.ModulePx == 0 {
		o.ModulePx = d.ModulePx
	}
	if o.MarginPx == 0 {
		o.MarginPx = d.MarginPx
	}
	if o.SidePx == 0 {
		o.SidePx = d.SidePx
	}
	if o.Filter == "" {
		o.Filter = d.Filter
	}
	o.Symbology = Symbology(strings.ToLower(string(o.Symbology)))
	o.Filter = Filter(strings.ToLower(string(o.Filter)))
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	switch o.Symbology {
	case DataMatrix, QR:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid symbology: %q (must be 'datamatrix' or 'qr')", o.Symbology)
	}
	switch o.Filter {
	case Lanczos, CatmullRom, Nearest:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid filter: %q (must be 'lanczos', 'catmullrom', or 'nearest')", o.Filter)
	}
	if o.ModulePx < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "module_px must be positive, got %d", o.ModulePx)
	}
	if o.MarginPx < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin_px cannot be negative, got %d", o.MarginPx)
	}
	if o.SidePx < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "code side must be positive, got %d px", o.SidePx)
	}
	return nil
}

// Key identifies the raster output of these options, for cache keys.
func (o Options) Key() string {
	return fmt.Sprintf("%s/m%d/q%d/s%d/%s", o.Symbology, o.ModulePx, o.MarginPx, o.SidePx, o.Filter)
}
