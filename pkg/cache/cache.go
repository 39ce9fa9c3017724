// Package cache stores voxelized shrubs between runs.
//
// Growing and voxelizing a large preset is the slow part of the pipeline, so
// results are keyed by a hash of the preset that produced them. Two backends
// are provided: [FileCache] for local CLI use and [RedisCache] for sharing a
// cache between machines. [NullCache] disables caching entirely.
//
// # Keys
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes the preset hash
// together with a schema version, so bumping the version invalidates every
// stored entry without touching the backend. [ScopedKeyer] prefixes keys to
// separate namespaces that share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with ok == false and a nil error. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLs for cached artifacts.
const (
	// TTLVoxels bounds how long a voxelized shrub is kept. Results are fully
	// determined by the preset, so this only limits disk growth.
	TTLVoxels = 7 * 24 * time.Hour
)

// schemaVersion is mixed into every key. Bump it whenever the encoding of a
// cached value changes.
const schemaVersion = 1

// Keyer builds cache keys for pipeline artifacts.
type Keyer interface {
	// VoxelKey returns the key for the voxels produced by a preset with the
	// given content hash.
	VoxelKey(presetHash string) string
}

// DefaultKeyer produces unprefixed, versioned keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// VoxelKey implements [Keyer].
func (k *DefaultKeyer) VoxelKey(presetHash string) string {
	return hashKey("voxels", schemaVersion, presetHash)
}
