package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/pipeline"
	"github.com/matzehuels/circlepack/pkg/scene"
)

// renderCommand creates the render command for re-rendering a saved scene.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  optionFlags
		cflags cacheFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [scene.json]",
		Short: "Render a saved packing",
		Long: `Render a saved packing.

The render command takes a scene.json file (written by 'pack -f json') and
renders it again, for example with another style or colors. The scene holds
every circle, so no packing is run.

Results are cached locally for faster subsequent runs.`,
		Example: `  circlepack render packing.json -f png --scale 4
  circlepack render packing.json --style sketch --stroke "#1d3557"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, cflags, output)
		},
	}

	cmd.Flags().StringVar(&flags.configFile, "config", "", "TOML file with a [render] table")
	flags.registerRender(cmd, true)
	cflags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")

	return cmd
}

// runRender loads the scene and renders it.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, cflags cacheFlags, output string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := scene.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}
	// The sketch style is seeded from the packing so re-renders match.
	opts.Seed = s.Seed
	opts.Config = s.Config
	opts.Logger = logger
	opts.SetDefaults()
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cflags)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, s, opts)
	if err != nil {
		return err
	}

	base := basePath(output, inputBase(input))
	if slices.Contains(opts.Formats, pipeline.FormatJSON) &&
		filepath.Clean(base+pipeline.Extension(pipeline.FormatJSON)) == filepath.Clean(input) {
		return errors.New(errors.ErrCodeInvalidInput, "output would overwrite %s; choose another path with -o", input)
	}
	paths, err := writeArtifacts(base, opts.Formats, artifacts)
	if err != nil {
		return err
	}
	prog.done("rendered scene", "artifacts", len(paths), "cached", cached)

	printStats(len(s.Circles), s.Ticks, cached)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
