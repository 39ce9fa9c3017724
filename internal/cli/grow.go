package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TanTanDev/shrubbery/pkg/config"
	"github.com/TanTanDev/shrubbery/pkg/errors"
	"github.com/TanTanDev/shrubbery/pkg/pipeline"
	"github.com/TanTanDev/shrubbery/pkg/sink"
)

// Output formats accepted by the grow command.
const (
	formatJSON    = "json"
	formatSummary = "summary"
)

// growOpts holds the flags of the grow command.
type growOpts struct {
	config     string
	iterations int
	seed       uint64
	workers    int
	format     string
	output     string
	attractors bool
	refresh    bool
	cache      cacheFlags
}

// growCommand creates the grow command.
func (c *CLI) growCommand() *cobra.Command {
	opts := growOpts{format: formatJSON}

	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow and voxelize a shrub",
		Long: `Grow a shrub from a preset, apply its post-processing steps and voxelize it.

Without --config the built-in default preset is used. Flags override the
matching preset fields.`,
		Example: `  # Grow the default shrub and print its voxels as JSON
  shrubbery grow

  # Grow a custom preset with a different seed into a file
  shrubbery grow --config bush.toml --seed 7 -o bush.json

  # Just show counts and extents
  shrubbery grow --format summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGrow(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "preset file (.toml, .yaml or .json)")
	cmd.Flags().IntVarP(&opts.iterations, "iterations", "n", 0, "number of grow steps")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for attractors and leaf dropping")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "voxelization workers (0 = one per CPU)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "output format: json or summary")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.attractors, "attractors", false, "include leftover attractors in JSON output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute voxels even when cached")
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runGrow(cmd *cobra.Command, opts growOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if opts.format != formatJSON && opts.format != formatSummary {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format %q (must be json or summary)", opts.format)
	}

	preset, err := loadPreset(opts.config)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("iterations") {
		preset.Iterations = opts.iterations
	}
	if flags.Changed("seed") {
		preset.Seed = opts.seed
	}
	if flags.Changed("workers") {
		preset.Voxelize.Workers = opts.workers
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if opts.output != "" {
		spinner = newSpinnerWithContext(ctx, "Growing shrub...")
		spinner.Start()
	}
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Preset:  preset,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		if spinner != nil {
			if spinner.Cancelled() {
				spinner.Stop()
			} else {
				spinner.StopWithError("Growth failed")
			}
		}
		return err
	}
	grew := fmt.Sprintf("Grew shrub with %d branches into %d voxels", result.Stats.Branches, result.Stats.Voxels)
	if spinner != nil {
		spinner.StopWithSuccess(grew)
	}
	prog.done(grew)

	var data []byte
	switch opts.format {
	case formatSummary:
		data = []byte(sink.RenderSummary(result.Voxels))
	default:
		jsonOpts := []sink.JSONOption{
			sink.WithJSONRunID(result.ID.String()),
			sink.WithJSONSeed(preset.Seed),
		}
		if opts.attractors {
			jsonOpts = append(jsonOpts, sink.WithJSONAttractors())
		}
		data, err = sink.RenderJSON(result.Shrub, result.Voxels, jsonOpts...)
		if err != nil {
			return fmt.Errorf("render json: %w", err)
		}
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := writeFile(opts.output, data); err != nil {
		return err
	}
	printSuccess("Wrote %s output", opts.format)
	printFile(opts.output)
	printStats(result.Stats.Branches, result.Stats.Voxels, result.CacheHit)
	return nil
}

// loadPreset reads path, or returns the default preset when path is empty.
func loadPreset(path string) (config.Preset, error) {
	if path == "" {
		return config.Default(), nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return config.Preset{}, err
	}
	return config.Load(path)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
