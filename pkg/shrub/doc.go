// Package shrub grows branching plant skeletons with the space colonization
// algorithm.
//
// # Overview
//
// A [Shrubbery] owns two collections: a flat, append-only arena of [Branch]
// values and the live set of [Attractor] points. Attractors are scattered
// inside a volume by a [Shape]; every [Shrubbery.Grow] step lets each
// attractor pull the closest branch within the attraction radius toward it,
// then spawns one child per pulled branch. Attractors that a branch comes
// within the kill distance of are consumed.
//
// # Lifecycle
//
//	s, err := shrub.New(geom.V3(0, 0, 0), geom.V3(0, 1, 0), shrub.DefaultSettings(), shrub.DefaultGeneratorSettings())
//	_, err = s.SpawnAttractors(rng, geom.V3(0, 13, 0), shape.Box{X: 15, Y: 10, Z: 15})
//	_, err = s.BuildTrunk()
//	for range 8 {
//	    s.Grow()
//	}
//
// # Tree Representation
//
// Branches reference their parent by index into the same arena. A parent is
// always appended before its children, so for every branch i with a parent p,
// p < i. The root (index 0) has [NoParent].
//
// # Growth Step
//
// Each call to [Shrubbery.Grow] runs in two phases separated by a barrier:
//
//  1. Every live attractor is scanned against every existing branch. An
//     attractor closer than the kill distance to any branch is marked reached
//     and contributes no pull. Otherwise the closest branch within the
//     attraction distance accumulates a unit vector toward the attractor.
//     Ties go to the lowest branch index.
//  2. Reached attractors are purged, then every branch that existed before
//     the step and was pulled at least once spawns a single child along its
//     normalized pull direction.
//
// Branches spawned in phase 2 take part only from the next step on.
//
// # Randomness
//
// The package never touches global random state. Callers pass a seeded
// *rand.Rand to [Shrubbery.SpawnAttractors] so runs are reproducible.
package shrub
