package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// RasterKey identifies the code raster of one payload.
	RasterKey(payload string, opts RasterKeyOpts) string
	// ArtifactKey identifies one rendered output of a document.
	ArtifactKey(documentHash string, opts ArtifactKeyOpts) string
}

// RasterKeyOpts are the settings that change a code raster.
type RasterKeyOpts struct {
	// Code is the canonical code options string, e.g. "datamatrix/m5/q10/s30/lanczos".
	Code string
}

// ArtifactKeyOpts are the settings that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string
	PNGScale float64
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RasterKey returns "raster:<code options>:<sha256>".
func (DefaultKeyer) RasterKey(payload string, opts RasterKeyOpts) string {
	return hashKey(fmt.Sprintf("raster:%s", opts.Code), payload)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(documentHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), documentHash, opts.PNGScale)
}
