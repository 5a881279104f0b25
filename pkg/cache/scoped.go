package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tools or teams can
// share one Redis instance without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "sillydeps:ci:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey generates a prefixed result key.
func (k *ScopedKeyer) ResultKey(manifest, tree []byte, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(manifest, tree, opts)
}

// LastKey generates a prefixed last-result key.
func (k *ScopedKeyer) LastKey(project string) string {
	return k.prefix + k.inner.LastKey(project)
}
