// Package pkg provides the libraries behind shrubbery, a procedural shrub
// generator.
//
// # Overview
//
// A shrub starts as a single root branch. Attractor points are scattered in
// a volume above it, and the skeleton grows toward them one step at a time
// using space colonization: every attractor pulls its nearest branch, pulled
// branches spawn children, and attractors that are reached disappear. The
// finished skeleton can be bent, then voxelized into branch and greenery
// voxels.
//
// # Architecture
//
// The typical data flow:
//
//	Preset (TOML/YAML/JSON)
//	         ↓
//	    [config] package (validate, convert to typed settings)
//	         ↓
//	    [shrub] package (attractors, trunk, grow steps)
//	         ↓
//	    [shrub/transform] package (gravity, spin)
//	         ↓
//	    [voxel] package (classify grid, drop leaves)
//	         ↓
//	    [sink] package (JSON or text summary)
//
// # Quick Start
//
// Grow the reference bush and voxelize it:
//
//	import (
//	    "context"
//	    "github.com/TanTanDev/shrubbery/pkg/config"
//	    "github.com/TanTanDev/shrubbery/pkg/pipeline"
//	    "github.com/TanTanDev/shrubbery/pkg/sink"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	res, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Preset: config.Default(),
//	})
//	out, _ := sink.RenderJSON(res.Shrub, res.Voxels)
//
// Or drive the growth engine directly:
//
//	s, _ := shrub.New(geom.Vec3{}, geom.V3(0, 1, 0), shrub.DefaultSettings(), shrub.DefaultGeneratorSettings())
//	s.SpawnAttractors(rng, geom.V3(0, 13, 0), shape.Box{X: 15, Y: 10, Z: 15})
//	s.BuildTrunk()
//	for range 8 {
//	    s.Grow()
//	}
//	voxels, _ := voxel.Voxelize(s, voxel.Settings{BranchSize: voxel.UniformSize{Distance: 1}, Leaves: voxel.NoLeaves{}})
//
// # Main Packages
//
// [geom] - float32 vectors, point-to-segment distance and bounding boxes.
//
// [shrub] - The growth engine: settings, branch arena, attractors, trunk and
// grow step. [shrub/shape] scatters attractors; [shrub/transform] bends the
// finished skeleton.
//
// [voxel] - Converts a skeleton into voxels with configurable branch
// thickness and leaf policies, in parallel x-slabs.
//
// [config] - Serializable presets and their conversion to typed settings.
//
// [pipeline] - Runs a preset end to end with caching and observability
// hooks. Used by every command of the CLI.
//
// [cache] - File, Redis and no-op caches for voxel results.
//
// [errors] - Structured errors with machine-readable codes.
//
// [sink] - Renders a grown shrub as JSON for external viewers or as a short
// text summary.
//
// # Testing
//
//	go test ./pkg/...         # All tests
//	go test ./pkg/shrub/...   # Specific package
//	go test -run Example      # Examples only
//
// [geom]: https://pkg.go.dev/github.com/TanTanDev/shrubbery/pkg/geom
// [shrub]: https://pkg.go.dev/github.com/TanTanDev/shrubbery/pkg/shrub
// [shrub/shape]: https://pkg.go.dev/github.com/TanTanDev/shrubbery/pkg/shrub/shape
// [shrub/transform]: https://pkg.go.dev/github.com/TanTanDev/shrubbery/pkg/shrub/transform
// [voxel]: https://pkg.go.dev/github.com/TanTanDev/shrubbery/pkg/voxel
// [config]: https://pkg.go.dev/github.com/TanTanDev/shrubbery/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/TanTanDev/shrubbery/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/TanTanDev/shrubbery/pkg/cache
// [errors]: https://pkg.go.dev/github.com/TanTanDev/shrubbery/pkg/errors
// [sink]: https://pkg.go.dev/github.com/TanTanDev/shrubbery/pkg/sink
package pkg
