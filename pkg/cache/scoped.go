package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects can share one
// Redis instance without seeing each other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "precice-tutorials:")
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

// FormatKey generates a prefixed key for the canonical marker.
func (k *ScopedKeyer) FormatKey(contentHash string, opts FormatKeyOpts) string {
	return k.prefix + k.inner.FormatKey(contentHash, opts)
}
