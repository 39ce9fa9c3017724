// Package config loads and validates shrub presets.
//
// A [Preset] describes a complete run: where the shrub is rooted, how it
// grows, where its attractors are scattered, which post-processing steps
// bend it and how it is voxelized. Presets are read from TOML, YAML or JSON
// with [Load] and converted into the typed settings of the shrub, transform
// and voxel packages.
package config

import (
	"strings"

	"github.com/TanTanDev/shrubbery/pkg/errors"
	"github.com/TanTanDev/shrubbery/pkg/geom"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
	"github.com/TanTanDev/shrubbery/pkg/shrub/shape"
	"github.com/TanTanDev/shrubbery/pkg/shrub/transform"
	"github.com/TanTanDev/shrubbery/pkg/voxel"
)

// Shape names accepted in [Attractors.Shape].
const ShapeBox = "box"

// Leaf policy names accepted in [Leaves.Policy].
const (
	LeavesNone   = "none"
	LeavesBranch = "branch"
	LeavesSphere = "sphere"
)

// Preset is a complete, serializable description of one shrub run.
type Preset struct {
	Seed        uint64           `json:"seed" toml:"seed" yaml:"seed"`
	Iterations  int              `json:"iterations" toml:"iterations" yaml:"iterations"`
	Root        Root             `json:"root" toml:"root" yaml:"root"`
	Growth      shrub.Settings   `json:"growth" toml:"growth" yaml:"growth"`
	Attractors  Attractors       `json:"attractors" toml:"attractors" yaml:"attractors"`
	PostProcess []transform.Step `json:"post_process,omitempty" toml:"post_process,omitempty" yaml:"post_process,omitempty"`
	Voxelize    Voxelize         `json:"voxelize" toml:"voxelize" yaml:"voxelize"`
	DropLeaves  float32          `json:"drop_leaves" toml:"drop_leaves" yaml:"drop_leaves"`
}

// Vec is a 3D vector as written in preset files.
type Vec struct {
	X float32 `json:"x" toml:"x" yaml:"x"`
	Y float32 `json:"y" toml:"y" yaml:"y"`
	Z float32 `json:"z" toml:"z" yaml:"z"`
}

// Geom converts v to a geom.Vec3.
func (v Vec) Geom() geom.Vec3 { return geom.V3(v.X, v.Y, v.Z) }

// Root places the first branch.
type Root struct {
	Position  Vec `json:"position" toml:"position" yaml:"position"`
	Direction Vec `json:"direction" toml:"direction" yaml:"direction"`
}

// Attractors describes the attractor volume.
type Attractors struct {
	Shape     string  `json:"shape" toml:"shape" yaml:"shape"`
	Origin    Vec     `json:"origin" toml:"origin" yaml:"origin"`
	Size      Vec     `json:"size" toml:"size" yaml:"size"`
	Density   float32 `json:"density" toml:"density" yaml:"density"`
	MinLeaves *int    `json:"min_leaves,omitempty" toml:"min_leaves,omitempty" yaml:"min_leaves,omitempty"`
	MaxLeaves *int    `json:"max_leaves,omitempty" toml:"max_leaves,omitempty" yaml:"max_leaves,omitempty"`
}

// Voxelize describes how the skeleton becomes voxels. GenerationSizes takes
// precedence over BranchSize when non-empty.
type Voxelize struct {
	BranchSize      float32   `json:"branch_size,omitempty" toml:"branch_size,omitempty" yaml:"branch_size,omitempty"`
	GenerationSizes []float32 `json:"generation_sizes,omitempty" toml:"generation_sizes,omitempty" yaml:"generation_sizes,omitempty"`
	RootSize        *RootSize `json:"root_size,omitempty" toml:"root_size,omitempty" yaml:"root_size,omitempty"`
	Leaves          Leaves    `json:"leaves" toml:"leaves" yaml:"leaves"`
	Workers         int       `json:"workers,omitempty" toml:"workers,omitempty" yaml:"workers,omitempty"`
}

// RootSize thickens the base of the trunk. An Additional of zero disables it.
type RootSize struct {
	Height     float32 `json:"height" toml:"height" yaml:"height"`
	Additional float32 `json:"additional" toml:"additional" yaml:"additional"`
}

// Leaves selects the leaf policy.
type Leaves struct {
	Policy     string  `json:"policy" toml:"policy" yaml:"policy"`
	Classifier string  `json:"classifier,omitempty" toml:"classifier,omitempty" yaml:"classifier,omitempty"`
	Radius     float32 `json:"radius,omitempty" toml:"radius,omitempty" yaml:"radius,omitempty"`
}

// Default returns the reference bush: a 15x10x15 attractor box above a
// trunk rooted at the origin, tiered branch sizes with a thickened base and
// no leaves.
func Default() Preset {
	minLeaves, maxLeaves := 30, 500
	return Preset{
		Seed:       42,
		Iterations: 8,
		Root: Root{
			Direction: Vec{Y: 1},
		},
		Growth: shrub.Settings{
			KillDistance:           2,
			BranchLength:           2,
			LeafAttractionDistance: 6,
			MinTrunkHeight:         3,
		},
		Attractors: Attractors{
			Shape:     ShapeBox,
			Origin:    Vec{Y: 13},
			Size:      Vec{X: 15, Y: 10, Z: 15},
			Density:   1,
			MinLeaves: &minLeaves,
			MaxLeaves: &maxLeaves,
		},
		Voxelize: Voxelize{
			GenerationSizes: []float32{1.5, 1, 1, 1},
			RootSize:        &RootSize{Height: 2, Additional: 2},
			Leaves:          Leaves{Policy: LeavesNone},
		},
		DropLeaves: 0.1,
	}
}

// Validate checks the whole preset, including every typed conversion.
func (p Preset) Validate() error {
	if p.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "iterations must not be negative, got %d", p.Iterations)
	}
	if !p.Root.Position.Geom().IsFinite() {
		return errors.New(errors.ErrCodeInvalidConfig, "root position must be finite")
	}
	if _, ok := p.Root.Direction.Geom().Normalize(); !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "root direction must be non-zero")
	}
	if err := p.Growth.Validate(); err != nil {
		return err
	}
	if err := p.GeneratorSettings().Validate(); err != nil {
		return err
	}
	if _, err := p.Shape(); err != nil {
		return err
	}
	for _, st := range p.PostProcess {
		if err := st.Validate(); err != nil {
			return err
		}
	}
	if _, err := p.VoxelSettings(); err != nil {
		return err
	}
	return errors.ValidateFraction("drop_leaves", p.DropLeaves)
}

// GrowthSettings returns the space colonization settings.
func (p Preset) GrowthSettings() shrub.Settings { return p.Growth }

// Steps returns the post-processing steps in application order.
func (p Preset) Steps() []transform.Step { return p.PostProcess }

// GeneratorSettings returns the attractor generation settings.
func (p Preset) GeneratorSettings() shrub.GeneratorSettings {
	return shrub.GeneratorSettings{
		Density:   p.Attractors.Density,
		MinLeaves: p.Attractors.MinLeaves,
		MaxLeaves: p.Attractors.MaxLeaves,
	}
}

// Shape returns the attractor volume.
func (p Preset) Shape() (shrub.Shape, error) {
	switch strings.ToLower(p.Attractors.Shape) {
	case ShapeBox, "":
		s := p.Attractors.Size
		if s.X <= 0 || s.Y <= 0 || s.Z <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidShape, "box size must be positive on every axis, got %gx%gx%g", s.X, s.Y, s.Z)
		}
		return shape.Box{X: s.X, Y: s.Y, Z: s.Z}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidShape, "unknown attractor shape %q", p.Attractors.Shape)
	}
}

// VoxelSettings returns the voxelizer settings.
func (p Preset) VoxelSettings() (voxel.Settings, error) {
	v := p.Voxelize
	settings := voxel.Settings{Workers: v.Workers}

	switch {
	case len(v.GenerationSizes) > 0:
		settings.BranchSize = voxel.GenerationSize{Distances: v.GenerationSizes}
	case v.BranchSize > 0:
		settings.BranchSize = voxel.UniformSize{Distance: v.BranchSize}
	default:
		return voxel.Settings{}, errors.New(errors.ErrCodeInvalidConfig, "voxelize needs branch_size or generation_sizes")
	}

	if v.RootSize != nil && v.RootSize.Additional != 0 {
		settings.RootSizeIncreaser = &voxel.RootSizeIncreaser{
			Height:         v.RootSize.Height,
			AdditionalSize: v.RootSize.Additional,
		}
	}

	classifier, err := shrub.ParseLeafClassifier(v.Leaves.Classifier)
	if err != nil {
		return voxel.Settings{}, err
	}
	switch strings.ToLower(v.Leaves.Policy) {
	case LeavesNone, "":
		settings.Leaves = voxel.NoLeaves{}
	case LeavesBranch:
		settings.Leaves = voxel.BranchIsLeaf{Classifier: classifier}
	case LeavesSphere:
		settings.Leaves = voxel.SphereFoliage{Radius: v.Leaves.Radius, Classifier: classifier}
	default:
		return voxel.Settings{}, errors.New(errors.ErrCodeInvalidConfig,
			"unknown leaf policy %q (want %s, %s or %s)", v.Leaves.Policy, LeavesNone, LeavesBranch, LeavesSphere)
	}

	if err := settings.Validate(); err != nil {
		return voxel.Settings{}, err
	}
	return settings, nil
}
