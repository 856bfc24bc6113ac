//go:build !nopreview

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/internal/preview"
	"github.com/matzehuels/circlepack/pkg/pipeline"
	"github.com/matzehuels/circlepack/pkg/render"
)

// previewEnabled reports whether this binary carries the preview window.
// Build with -tags nopreview to drop it along with its cgo and X11
// requirements.
const previewEnabled = true

func (c *CLI) addPreview(root *cobra.Command) { root.AddCommand(c.previewCommand()) }

// previewCommand creates the preview command: a desktop window that shows
// the packing as it grows.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags         optionFlags
		output        string
		ticksPerFrame int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Watch a packing grow in a window",
		Long: `Watch a packing grow in a window.

Each frame advances the packing and redraws it. Space pauses, q or Esc
closes the window. With -f, the finished packing is exported when the
window closes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			export := cmd.Flags().Changed("format") || flags.configFile != "" && len(opts.Formats) > 0
			return c.runPreview(cmd.Context(), opts, output, ticksPerFrame, export)
		},
	}

	flags.registerPack(cmd)
	flags.registerRender(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().IntVar(&ticksPerFrame, "speed", preview.DefaultTicksPerFrame, "ticks per frame")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, opts pipeline.Options, output string, ticksPerFrame int, export bool) error {
	opts.Logger = loggerFromContext(ctx)
	if err := opts.Validate(); err != nil {
		return err
	}
	style, err := render.ParseStyle(opts.Style, opts.Seed)
	if err != nil {
		return err
	}

	s, err := preview.Run(ctx, preview.Options{
		Config:        opts.Config,
		Seed:          opts.Seed,
		Style:         style,
		Background:    opts.Background,
		Stroke:        opts.Stroke,
		StrokeWidth:   opts.StrokeWidth,
		TicksPerFrame: ticksPerFrame,
		Title:         fmt.Sprintf("%s (seed %d)", appName, opts.Seed),
	})
	if err != nil {
		return err
	}
	if !s.Complete {
		printWarning("Window closed at tick %d before the packing completed", s.Ticks)
	} else {
		printSuccess("Packed %d circles", len(s.Circles))
	}
	if !export {
		return nil
	}

	artifacts, err := pipeline.Render(ctx, s, opts, opts.Formats)
	if err != nil {
		return err
	}
	paths, err := writeArtifacts(basePath(output, exportBase(s)), opts.Formats, artifacts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
