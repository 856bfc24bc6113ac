package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/pkg/pipeline"
)

// packCommand creates the pack command: grow a packing and write artifacts.
func (c *CLI) packCommand() *cobra.Command {
	var (
		flags   optionFlags
		cflags  cacheFlags
		output  string
		refresh bool
		stats   bool
	)

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Grow a circle packing and export it",
		Long: `Grow a circle packing and export it.

Circles are placed at random free points inside the region and grow every
tick until they touch the border or another circle. When nothing grows any
more the arrangement is written in each requested format.

Without -o, files are named after the packing parameters and the time, e.g.
Packed_Circles-MINSTEPS_4-MINRADIUS_12-...-2026-01-02T15:04:05.000Z.svg.

Finished packings are cached by configuration and seed; --refresh packs
again anyway.`,
		Example: `  circlepack pack
  circlepack pack --seed 7 -f svg,png -o art/packing
  circlepack pack --config packing.toml --style sketch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runPack(cmd.Context(), opts, cflags, output, stats)
		},
	}

	flags.registerPack(cmd)
	flags.registerRender(cmd, true)
	cflags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore a cached packing and pack again")
	cmd.Flags().BoolVar(&stats, "stats", false, "print a table of packing statistics")

	return cmd
}

// runPack executes the pipeline and writes the artifacts.
func (c *CLI) runPack(ctx context.Context, opts pipeline.Options, cflags cacheFlags, output string, stats bool) error {
	opts.Logger = loggerFromContext(ctx)
	if err := opts.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cflags)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newPackSpinner(ctx, "Packing circles...")
	opts.OnTick = spinner.OnTick
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Packing failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(basePath(output, exportBase(res.Scene)), opts.Formats, res.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Packed %d circles", res.Stats.Circles)
	printStats(res.Stats.Circles, res.Stats.Ticks, res.CacheInfo.PackHit)
	for _, p := range paths {
		printFile(p)
	}
	if stats {
		printStatsTable(res)
	}
	for _, p := range paths {
		if strings.HasSuffix(p, pipeline.Extension(pipeline.FormatJSON)) {
			printNextStep("Re-render with another style", fmt.Sprintf("%s render %q --style sketch", appName, p))
			break
		}
	}
	return nil
}
