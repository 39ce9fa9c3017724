package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/TanTanDev/shrubbery/pkg/cache"
	"github.com/TanTanDev/shrubbery/pkg/config"
	"github.com/TanTanDev/shrubbery/pkg/observability"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
	"github.com/TanTanDev/shrubbery/pkg/shrub/transform"
	"github.com/TanTanDev/shrubbery/pkg/voxel"
)

// Random streams derived from the preset seed. Growth and leaf dropping use
// separate streams so a cached voxel list never shifts the skeleton.
const (
	streamGrowth uint64 = 0xdeadbeef
	streamLeaves uint64 = 0x1eaf
)

// cacheKeyType labels voxel lookups in the cache hooks.
const cacheKeyType = "voxels"

// NewRand returns the deterministic random source for a seed and stream.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^stream))
}

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  cache.NewDefaultKeyer(),
		Logger: logger,
	}
}

// Execute runs plant → grow → post-process → voxelize with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	p := opts.Preset
	result := &Result{ID: uuid.New()}
	logger := opts.Logger.With("run", result.ID.String()[:8])

	// Stage 1: Plant
	start := time.Now()
	s, spawned, trunk, err := Plant(p, logger)
	if err != nil {
		return nil, fmt.Errorf("plant: %w", err)
	}
	result.Shrub = s
	result.Trunk = trunk
	result.Stats.Attractors = spawned
	result.Stats.PlantTime = time.Since(start)
	logger.Info("planted shrub",
		"attractors", spawned,
		"trunk_height", trunk.Height,
		"duration", result.Stats.PlantTime)

	// Stage 2: Grow
	start = time.Now()
	steps, err := r.Grow(ctx, s, p.Iterations)
	if err != nil {
		return nil, fmt.Errorf("grow: %w", err)
	}
	result.Stats.GrowSteps = steps
	result.Stats.GrowTime = time.Since(start)
	result.Stats.Branches = len(s.Branches())
	result.Stats.Remaining = len(s.Attractors())
	logger.Info("grew shrub",
		"steps", steps,
		"branches", result.Stats.Branches,
		"attractors_left", result.Stats.Remaining,
		"duration", result.Stats.GrowTime)

	// Stage 3: Post-process
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("post-process: %w", err)
	}
	start = time.Now()
	if err := transform.Apply(s, p.Steps()...); err != nil {
		return nil, fmt.Errorf("post-process: %w", err)
	}
	result.Stats.TransformTime = time.Since(start)
	if len(p.PostProcess) > 0 {
		logger.Info("applied post-processing",
			"steps", len(p.PostProcess),
			"duration", result.Stats.TransformTime)
	}

	// Stage 4: Voxelize
	start = time.Now()
	voxels, hit, err := r.VoxelizeWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("voxelize: %w", err)
	}
	result.Voxels = voxels
	result.CacheHit = hit
	result.Stats.VoxelizeTime = time.Since(start)
	result.Stats.Voxels = len(voxels)
	result.Stats.Greenery = voxel.Count(voxels)[voxel.Greenery]
	logger.Info("voxelized shrub",
		"voxels", result.Stats.Voxels,
		"greenery", result.Stats.Greenery,
		"cached", hit,
		"duration", result.Stats.VoxelizeTime)

	return result, nil
}

// Plant creates the shrub described by p, scatters its attractors with the
// seeded growth stream and builds the trunk. It returns the number of
// attractors spawned.
func Plant(p config.Preset, logger *log.Logger) (*shrub.Shrubbery, int, shrub.TrunkResult, error) {
	shape, err := p.Shape()
	if err != nil {
		return nil, 0, shrub.TrunkResult{}, err
	}
	s, err := shrub.New(p.Root.Position.Geom(), p.Root.Direction.Geom(),
		p.GrowthSettings(), p.GeneratorSettings(), shrub.WithLogger(logger))
	if err != nil {
		return nil, 0, shrub.TrunkResult{}, err
	}
	rng := NewRand(p.Seed, streamGrowth)
	spawned, err := s.SpawnAttractors(rng, p.Attractors.Origin.Geom(), shape)
	if err != nil {
		return nil, 0, shrub.TrunkResult{}, err
	}
	trunk, err := s.BuildTrunk()
	if err != nil {
		return nil, 0, shrub.TrunkResult{}, err
	}
	return s, spawned, trunk, nil
}

// Grow runs up to iterations colonization steps on s and returns how many
// ran. It stops early once a step spawns nothing and no attractors remain,
// since every later step would be a no-op.
func (r *Runner) Grow(ctx context.Context, s *shrub.Shrubbery, iterations int) (int, error) {
	hooks := observability.Pipeline()
	hooks.OnGrowStart(ctx, iterations)
	start := time.Now()

	steps := 0
	var err error
	for range iterations {
		if err = ctx.Err(); err != nil {
			break
		}
		res := s.Grow()
		steps++
		if res.Spawned == 0 && res.Attractors == 0 {
			break
		}
	}

	hooks.OnGrowComplete(ctx, len(s.Branches()), time.Since(start), err)
	return steps, err
}

// VoxelizeWithCacheInfo voxelizes s and drops leaves, consulting the cache
// first unless opts.Refresh is set. It reports whether the voxels came from
// the cache.
func (r *Runner) VoxelizeWithCacheInfo(ctx context.Context, s *shrub.Shrubbery, opts Options) ([]voxel.Voxel, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	p := opts.Preset

	key, err := r.voxelKey(p)
	if err != nil {
		return nil, false, err
	}

	cacheHooks := observability.Cache()
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			opts.Logger.Warn("cache lookup failed", "error", err)
		case hit:
			var cached []voxel.Voxel
			if err := json.Unmarshal(data, &cached); err == nil {
				cacheHooks.OnCacheHit(ctx, cacheKeyType)
				return cached, true, nil
			}
			opts.Logger.Debug("discarding unreadable cache entry", "key", key)
		}
		cacheHooks.OnCacheMiss(ctx, cacheKeyType)
	}

	settings, err := p.VoxelSettings()
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnVoxelizeStart(ctx, len(s.Branches()))
	start := time.Now()
	voxels, err := voxel.VoxelizeContext(ctx, s, settings)
	if err == nil {
		voxels = ThinLeaves(p, voxels)
	}
	hooks.OnVoxelizeComplete(ctx, len(voxels), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(voxels); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLVoxels); err != nil {
			opts.Logger.Warn("cache write failed", "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}
	return voxels, false, nil
}

// ThinLeaves drops p.DropLeaves of the foliage in voxels using the preset's
// leaf stream, so the same preset always removes the same voxels.
func ThinLeaves(p config.Preset, voxels []voxel.Voxel) []voxel.Voxel {
	return voxel.DropLeaves(NewRand(p.Seed, streamLeaves), voxels, p.DropLeaves)
}

// voxelKey hashes the preset's canonical JSON form. The worker count does
// not change the output and is left out.
func (r *Runner) voxelKey(p config.Preset) (string, error) {
	p.Voxelize.Workers = 0
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("serialize preset for cache key: %w", err)
	}
	return r.Keyer.VoxelKey(cache.Hash(data)), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
