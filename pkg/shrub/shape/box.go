// Package shape provides attractor placement volumes for shrub growth.
package shape

import (
	"math/rand/v2"

	"github.com/TanTanDev/shrubbery/pkg/errors"
	"github.com/TanTanDev/shrubbery/pkg/geom"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
)

// Box fills an axis-aligned box of the given total size with a jittered
// lattice of attractors.
type Box struct {
	X, Y, Z float32
}

var _ shrub.Shape = Box{}

// Spacing returns the lattice pitch: half the gap between the kill and
// attraction radii, divided by the density.
func Spacing(growth shrub.Settings, gen shrub.GeneratorSettings) float32 {
	return 0.5 * (growth.LeafAttractionDistance - growth.KillDistance) / gen.Density
}

// Cells returns the lattice resolution along each axis for the given spacing.
func (b Box) Cells(spacing float32) geom.IVec3 {
	if spacing <= 0 {
		return geom.IVec3{}
	}
	return geom.IVec3{
		X: int(b.X / spacing),
		Y: int(b.Y / spacing),
		Z: int(b.Z / spacing),
	}
}

// Generate emits one attractor per lattice cell, centred on origin, each
// displaced by uniform jitter in [-spacing/2, spacing/2) per axis.
func (b Box) Generate(rng *rand.Rand, origin geom.Vec3, growth shrub.Settings, gen shrub.GeneratorSettings, emit func(geom.Vec3)) error {
	if b.X <= 0 || b.Y <= 0 || b.Z <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "box size must be positive on every axis, got %gx%gx%g", b.X, b.Y, b.Z)
	}
	if gen.Density <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "density must be positive, got %g", gen.Density)
	}
	spacing := Spacing(growth, gen)
	if spacing <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"attractor spacing %g is not positive: kill_distance (%g) must be less than leaf_attraction_distance (%g)",
			spacing, growth.KillDistance, growth.LeafAttractionDistance)
	}
	n := b.Cells(spacing)
	if n.X <= 0 || n.Y <= 0 || n.Z <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"box %gx%gx%g is smaller than the attractor spacing %g", b.X, b.Y, b.Z, spacing)
	}

	half := spacing * 0.5
	corner := origin.Add(geom.Splat3(half)).Sub(geom.V3(b.X, b.Y, b.Z).Scale(0.5))
	for x := range n.X {
		for y := range n.Y {
			for z := range n.Z {
				cell := corner.Add(geom.V3(float32(x), float32(y), float32(z)).Scale(spacing))
				off := geom.V3(jitter(rng, half), jitter(rng, half), jitter(rng, half))
				emit(cell.Add(off))
			}
		}
	}
	return nil
}

// jitter draws uniformly from [-s, s).
func jitter(rng *rand.Rand, s float32) float32 {
	return (rng.Float32()*2 - 1) * s
}
