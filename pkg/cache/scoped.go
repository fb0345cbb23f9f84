package cache

// ScopedKeyer prefixes every key of an inner Keyer, so diagrams of
// different tenants (or a test run) never share entries:
//
//	keyer := cache.NewScopedKeyer(nil, "diagram:0b6a4e1c:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer when nil).
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(scriptHash, opts)
}

func (k *ScopedKeyer) LayoutKey(scriptHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(scriptHash, opts)
}
