package voxel

import (
	"github.com/chewxy/math32"

	"github.com/TanTanDev/shrubbery/pkg/errors"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
)

// BranchSize selects the branch thickness used by [Voxelize].
// It is implemented only by [UniformSize] and [GenerationSize].
type BranchSize interface {
	// Threshold returns the thickness for a branch of the given generation.
	Threshold(generation int) float32
	validate() error
}

// UniformSize gives every branch the same thickness.
type UniformSize struct {
	Distance float32
}

func (u UniformSize) Threshold(int) float32 { return u.Distance }

func (u UniformSize) validate() error {
	return errors.ValidateNonNegative("branch size distance", u.Distance)
}

// GenerationSize gives each generation its own thickness. Generations past
// the end of Distances use the last entry. With no entries nothing matches.
type GenerationSize struct {
	Distances []float32
}

func (g GenerationSize) Threshold(generation int) float32 {
	if len(g.Distances) == 0 || generation < 0 {
		return -math32.MaxFloat32
	}
	return g.Distances[min(generation, len(g.Distances)-1)]
}

func (g GenerationSize) validate() error {
	for _, d := range g.Distances {
		if err := errors.ValidateNonNegative("branch size distance", d); err != nil {
			return err
		}
	}
	return nil
}

// RootSizeIncreaser thickens the base of the shrub. At height 0 the bonus is
// AdditionalSize; it falls off linearly to zero at Height.
type RootSizeIncreaser struct {
	Height         float32
	AdditionalSize float32
}

// Bonus returns the extra thickness at height y. Below 0 the bonus stays at
// its maximum.
func (r RootSizeIncreaser) Bonus(y float32) float32 {
	ratio := max(0, min(y/r.Height, 1))
	return r.AdditionalSize * (1 - ratio)
}

func (r RootSizeIncreaser) validate() error {
	if err := errors.ValidatePositive("root size height", r.Height); err != nil {
		return err
	}
	return errors.ValidateNonNegative("root size additional", r.AdditionalSize)
}

// LeafPolicy decides where greenery appears. It is implemented only by
// [NoLeaves], [BranchIsLeaf] and [SphereFoliage].
type LeafPolicy interface {
	leafPolicy()
	validate() error
}

// NoLeaves emits branch voxels only.
type NoLeaves struct{}

// BranchIsLeaf recolours branch voxels to greenery when the nearest branch
// is a leaf under Classifier.
type BranchIsLeaf struct {
	Classifier shrub.LeafClassifier
}

// SphereFoliage places a sphere of greenery around the tip of every leaf
// branch. A cell is inside when its distance to the tip is at most Radius.
type SphereFoliage struct {
	Radius     float32
	Classifier shrub.LeafClassifier
}

func (NoLeaves) leafPolicy()      {}
func (BranchIsLeaf) leafPolicy()  {}
func (SphereFoliage) leafPolicy() {}

func (NoLeaves) validate() error     { return nil }
func (BranchIsLeaf) validate() error { return nil }

func (s SphereFoliage) validate() error {
	return errors.ValidatePositive("foliage radius", s.Radius)
}

// Settings configures [Voxelize].
type Settings struct {
	BranchSize        BranchSize
	RootSizeIncreaser *RootSizeIncreaser // optional
	Leaves            LeafPolicy         // nil means NoLeaves
	// Workers bounds the number of slabs classified at once. Zero uses
	// GOMAXPROCS.
	Workers int
}

// Validate checks every configured policy.
func (s Settings) Validate() error {
	if s.BranchSize == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "branch size is required")
	}
	if err := s.BranchSize.validate(); err != nil {
		return err
	}
	if s.RootSizeIncreaser != nil {
		if err := s.RootSizeIncreaser.validate(); err != nil {
			return err
		}
	}
	if s.Leaves != nil {
		if err := s.Leaves.validate(); err != nil {
			return err
		}
	}
	if s.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative, got %d", s.Workers)
	}
	return nil
}
