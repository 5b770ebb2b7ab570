package cache

// ScopedKeyer wraps a Keyer with a prefix so that several collections can
// share one backend without colliding.
//
//	greenhouse := NewScopedKeyer(NewDefaultKeyer(), "greenhouse:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer falls back to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RasterKey generates a prefixed raster key.
func (k *ScopedKeyer) RasterKey(payload string, opts RasterKeyOpts) string {
	return k.prefix + k.inner.RasterKey(payload, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(documentHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(documentHash, opts)
}
