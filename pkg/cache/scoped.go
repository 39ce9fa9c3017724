package cache

// ScopedKeyer wraps a Keyer with a prefix so several tools or users can share
// one backend without colliding.
//
// Example usage:
//
//	// Keys for a shared render farm
//	farm := NewScopedKeyer(NewDefaultKeyer(), "farm:")
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

// VoxelKey generates a prefixed key for voxel caching.
func (k *ScopedKeyer) VoxelKey(presetHash string) string {
	return k.prefix + k.inner.VoxelKey(presetHash)
}
