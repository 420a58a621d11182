package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The server uses this to give each caller a separate cache namespace
// while sharing one backend.
//
// Example usage:
//
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
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

// NetworkKey generates a prefixed key for decoded network caching.
func (k *ScopedKeyer) NetworkKey(specHash string) string {
	return k.prefix + k.inner.NetworkKey(specHash)
}

// PatternKey generates a prefixed key for pattern graph caching.
func (k *ScopedKeyer) PatternKey(networkHash string, opts PatternKeyOpts) string {
	return k.prefix + k.inner.PatternKey(networkHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(patternHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(patternHash, opts)
}
