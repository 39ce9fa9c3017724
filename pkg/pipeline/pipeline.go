// Package pipeline runs a preset end to end: grow the skeleton, bend it,
// voxelize it and thin its foliage.
//
// The same [Runner] serves the one-shot grow command and any long-running
// host, so caching, logging and observability hooks behave identically
// wherever a shrub is produced.
//
// # Stages
//
//  1. Plant: create the shrub, scatter attractors and build the trunk
//  2. Grow: run up to Preset.Iterations colonization steps
//  3. Post-process: apply the preset's gravity and spin steps in order
//  4. Voxelize: classify the grid and drop a fraction of the foliage
//
// Stage 4 is cached by a hash of the preset. A hit still replays stages 1-3,
// which are cheap, so the returned [Result] always carries a live skeleton.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Preset: config.Default()})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(result.Voxels))
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/TanTanDev/shrubbery/pkg/config"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
	"github.com/TanTanDev/shrubbery/pkg/voxel"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Preset describes the shrub. A zero Preset is rejected by validation;
	// start from config.Default().
	Preset config.Preset `json:"preset"`

	// Refresh bypasses cached voxels and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives stage progress. Defaults to the runner's logger.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults validates the preset and fills in a discard logger.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Preset.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and rendered output.
	ID uuid.UUID

	// Shrub is the grown and post-processed skeleton.
	Shrub *shrub.Shrubbery

	// Trunk reports what the trunk stage appended.
	Trunk shrub.TrunkResult

	// Voxels is the final voxel list, after leaf dropping.
	Voxels []voxel.Voxel

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is set when Voxels came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Attractors    int // attractors spawned
	Remaining     int // live attractors after growth
	GrowSteps     int // grow steps actually run
	Branches      int
	Voxels        int
	Greenery      int
	PlantTime     time.Duration
	GrowTime      time.Duration
	TransformTime time.Duration
	VoxelizeTime  time.Duration
}
