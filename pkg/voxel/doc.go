// Package voxel converts a grown shrub skeleton into a sparse list of voxels.
//
// # Overview
//
// [Voxelize] samples every integer cell of a grid around the skeleton's
// bounds. A cell becomes [Branch] material when its distance to the nearest
// branch segment is below the branch thickness, and [Greenery] when a leaf
// policy claims it. Everything else is air and is not emitted.
//
// # Branch Thickness
//
// Thickness is a closed choice of [BranchSize]:
//
//   - [UniformSize]: one distance for every branch
//   - [GenerationSize]: one distance per generation, the last entry
//     repeating for deeper generations
//
// An optional [RootSizeIncreaser] thickens the base: it adds a bonus that
// fades linearly from its full size at height 0 to nothing at its height.
//
// # Leaves
//
// [LeafPolicy] is one of:
//
//   - [NoLeaves]: branch voxels only
//   - [BranchIsLeaf]: branch voxels whose nearest branch is a leaf become
//     greenery
//   - [SphereFoliage]: a sphere of greenery around every leaf branch tip;
//     the grid is padded by the radius so spheres are not clipped
//
// [DropLeaves] thins greenery afterwards by removing a random fraction.
//
// # Ordering and Parallelism
//
// The grid is split into slabs along x that are classified concurrently with
// an errgroup. Slabs are concatenated in x order, so the output is ordered by
// x, then y, then z regardless of [Settings.Workers].
package voxel
