package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/pipeline"
)

// =============================================================================
// Config File
// =============================================================================

// fileConfig is the layout of a --config file:
//
//	seed = 7
//	tick_limit = 100000
//
//	[packing]
//	size = 540
//	border = 32
//	max_attempts = 65536
//
//	[render]
//	formats = ["svg", "png"]
//	style = "sketch"
//
// Keys left out keep their defaults.
type fileConfig struct {
	Seed      uint64       `toml:"seed"`
	TickLimit int          `toml:"tick_limit"`
	Packing   pack.Config  `toml:"packing"`
	Render    renderConfig `toml:"render"`
}

type renderConfig struct {
	Formats     []string `toml:"formats"`
	Style       string   `toml:"style"`
	Background  string   `toml:"background"`
	Stroke      string   `toml:"stroke"`
	StrokeWidth float64  `toml:"stroke_width"`
	Scale       float64  `toml:"scale"`
}

// loadConfigFile reads path into pipeline options. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func loadConfigFile(path string) (pipeline.Options, error) {
	fc := fileConfig{Packing: pack.DefaultConfig()}
	md, err := toml.DecodeFile(path, &fc)
	if os.IsNotExist(err) {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidConfig,
			"unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	return pipeline.Options{
		Config:      fc.Packing,
		Seed:        fc.Seed,
		TickLimit:   fc.TickLimit,
		Formats:     fc.Render.Formats,
		Style:       fc.Render.Style,
		Background:  fc.Render.Background,
		Stroke:      fc.Render.Stroke,
		StrokeWidth: fc.Render.StrokeWidth,
		Scale:       fc.Render.Scale,
	}, nil
}

// =============================================================================
// Flags
// =============================================================================

// optionFlags binds the packing and rendering flags shared by pack, watch,
// preview and render. Flags that were set explicitly override the config
// file, which overrides the defaults.
type optionFlags struct {
	configFile string

	seed       uint64
	tickLimit  int
	packConfig pack.Config

	formats     string
	style       string
	background  string
	stroke      string
	strokeWidth float64
	scale       float64
}

// registerPack adds the packing flags.
func (f *optionFlags) registerPack(cmd *cobra.Command) {
	fs := cmd.Flags()
	d := pack.DefaultConfig()
	fs.StringVar(&f.configFile, "config", "", "TOML file with [packing] and [render] tables")
	fs.Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed; the same seed always packs the same way")
	fs.IntVar(&f.tickLimit, "tick-limit", pipeline.DefaultTickLimit, "give up after this many ticks")
	fs.Float64Var(&f.packConfig.Size, "size", d.Size, "side length of the square region")
	fs.Float64Var(&f.packConfig.Border, "border", d.Border, "margin kept free along every edge")
	fs.Float64Var(&f.packConfig.SeedRadius, "seed-radius", d.SeedRadius, "radius of the fixed circle at the center")
	fs.IntVar(&f.packConfig.MaxAttempts, "max-attempts", d.MaxAttempts, "placement draws per tick (0 disables placement)")
	fs.IntVar(&f.packConfig.TargetPerFrame, "per-frame", d.TargetPerFrame, "new circles wanted per tick")
	fs.Float64Var(&f.packConfig.GrowthStep, "growth-step", d.GrowthStep, "radius gained per tick")
	fs.Float64Var(&f.packConfig.MaxRadius, "max-radius", d.MaxRadius, "largest radius a circle may reach")
}

// registerRender adds the styling flags. withFormats also adds -f.
func (f *optionFlags) registerRender(cmd *cobra.Command, withFormats bool) {
	fs := cmd.Flags()
	if withFormats {
		fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, json, dot, graph (comma-separated)")
	}
	fs.StringVar(&f.style, "style", pipeline.DefaultStyle, "drawing style: rings (default), simple, sketch")
	fs.StringVar(&f.background, "background", "", "background color (#rrggbb)")
	fs.StringVar(&f.stroke, "stroke", "", "stroke color (#rrggbb)")
	fs.Float64Var(&f.strokeWidth, "stroke-width", 0, "stroke width in region units")
	fs.Float64Var(&f.scale, "scale", 0, "PNG pixels per region unit")
}

// options merges defaults, the config file and explicitly set flags.
func (f *optionFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.Options{Config: pack.DefaultConfig()}
	if f.configFile != "" {
		var err error
		if opts, err = loadConfigFile(f.configFile); err != nil {
			return opts, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("seed") {
		opts.Seed = f.seed
	}
	if changed("tick-limit") {
		opts.TickLimit = f.tickLimit
	}

	cfg := &opts.Config
	overrides := []struct {
		flag string
		set  func()
	}{
		{"size", func() { cfg.Size = f.packConfig.Size }},
		{"border", func() { cfg.Border = f.packConfig.Border }},
		{"seed-radius", func() { cfg.SeedRadius = f.packConfig.SeedRadius }},
		{"max-attempts", func() { cfg.MaxAttempts = f.packConfig.MaxAttempts }},
		{"per-frame", func() { cfg.TargetPerFrame = f.packConfig.TargetPerFrame }},
		{"growth-step", func() { cfg.GrowthStep = f.packConfig.GrowthStep }},
		{"max-radius", func() { cfg.MaxRadius = f.packConfig.MaxRadius }},
		{"format", func() { opts.Formats = parseFormats(f.formats) }},
		{"style", func() { opts.Style = f.style }},
		{"background", func() { opts.Background = f.background }},
		{"stroke", func() { opts.Stroke = f.stroke }},
		{"stroke-width", func() { opts.StrokeWidth = f.strokeWidth }},
		{"scale", func() { opts.Scale = f.scale }},
	}
	for _, o := range overrides {
		if changed(o.flag) {
			o.set()
		}
	}
	return opts, nil
}
