package shrub

import (
	"github.com/TanTanDev/shrubbery/pkg/errors"
)

// Settings controls the space colonization algorithm.
type Settings struct {
	// KillDistance is the radius within which an attractor is consumed.
	KillDistance float32 `json:"kill_distance" toml:"kill_distance" yaml:"kill_distance"`
	// BranchLength is the length of every spawned branch segment.
	BranchLength float32 `json:"branch_length" toml:"branch_length" yaml:"branch_length"`
	// LeafAttractionDistance bounds how far an attractor can pull a branch.
	LeafAttractionDistance float32 `json:"leaf_attraction_distance" toml:"leaf_attraction_distance" yaml:"leaf_attraction_distance"`
	// MinTrunkHeight is the height the trunk reaches even when attractors
	// are in range earlier.
	MinTrunkHeight float32 `json:"min_trunk_height" toml:"min_trunk_height" yaml:"min_trunk_height"`
}

// DefaultSettings returns the stock growth parameters.
func DefaultSettings() Settings {
	return Settings{
		KillDistance:           0.3,
		BranchLength:           0.3,
		LeafAttractionDistance: 5,
		MinTrunkHeight:         1,
	}
}

// Validate rejects settings that would produce a degenerate skeleton.
// The kill distance must be strictly below the attraction distance, otherwise
// every attractor is consumed before it can pull anything.
func (s Settings) Validate() error {
	if err := errors.ValidatePositive("kill_distance", s.KillDistance); err != nil {
		return err
	}
	if err := errors.ValidatePositive("branch_length", s.BranchLength); err != nil {
		return err
	}
	if err := errors.ValidatePositive("leaf_attraction_distance", s.LeafAttractionDistance); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("min_trunk_height", s.MinTrunkHeight); err != nil {
		return err
	}
	if s.KillDistance >= s.LeafAttractionDistance {
		return errors.New(errors.ErrCodeInvalidConfig,
			"kill_distance (%g) must be less than leaf_attraction_distance (%g)",
			s.KillDistance, s.LeafAttractionDistance)
	}
	return nil
}

// GeneratorSettings controls how attractors are scattered by a [Shape].
type GeneratorSettings struct {
	// Density scales the number of attractors per unit volume.
	Density float32 `json:"density" toml:"density" yaml:"density"`
	// MinLeaves and MaxLeaves are optional bounds on the attractor count.
	// Shapes may ignore them; the box shape does.
	MinLeaves *int `json:"min_leaves,omitempty" toml:"min_leaves,omitempty" yaml:"min_leaves,omitempty"`
	MaxLeaves *int `json:"max_leaves,omitempty" toml:"max_leaves,omitempty" yaml:"max_leaves,omitempty"`
}

// DefaultGeneratorSettings returns density 1 with leaf bounds 30..500.
func DefaultGeneratorSettings() GeneratorSettings {
	minLeaves, maxLeaves := 30, 500
	return GeneratorSettings{
		Density:   1,
		MinLeaves: &minLeaves,
		MaxLeaves: &maxLeaves,
	}
}

// Validate checks the density and, when both are set, the leaf bounds.
func (g GeneratorSettings) Validate() error {
	if err := errors.ValidatePositive("density", g.Density); err != nil {
		return err
	}
	if g.MinLeaves != nil && *g.MinLeaves < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_leaves must not be negative, got %d", *g.MinLeaves)
	}
	if g.MaxLeaves != nil && *g.MaxLeaves < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_leaves must not be negative, got %d", *g.MaxLeaves)
	}
	if g.MinLeaves != nil && g.MaxLeaves != nil && *g.MinLeaves > *g.MaxLeaves {
		return errors.New(errors.ErrCodeInvalidConfig,
			"min_leaves (%d) must not exceed max_leaves (%d)", *g.MinLeaves, *g.MaxLeaves)
	}
	return nil
}
