// Package pipeline runs a packing to completion and renders its artifacts.
//
// This package is the single entry point shared by the CLI and the HTTP
// service, so both apply the same defaults, cache keys and validation.
//
// # Stages
//
//  1. Pack: drive a [pack.Stepper] until a tick reports completion or the
//     tick limit is reached, producing a [scene.Scene]
//  2. Render: produce each requested format from the scene, concurrently
//
// Both stages are cached. A scene is keyed by its configuration and seed;
// an artifact by the scene content and the render options that affect it.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  pack.DefaultConfig(),
//	    Seed:    7,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circlepack/pkg/cache"
	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/render"
	"github.com/matzehuels/circlepack/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultTickLimit bounds a run. The default configuration completes in
	// a few thousand ticks.
	DefaultTickLimit = 200_000

	// DefaultProgressEvery is how often, in ticks, progress is logged at
	// debug level.
	DefaultProgressEvery = 250

	// DefaultStyle is the default drawing style.
	DefaultStyle = render.StyleRings
)

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatGraph = "graph"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatGraph: true,
}

// Extension returns the file suffix written for format.
func Extension(format string) string {
	if format == FormatGraph {
		return ".contacts.svg"
	}
	return "." + format
}

// ErrTickLimit is wrapped by the error returned when a packing does not
// complete within [Options.TickLimit] ticks.
var ErrTickLimit = stderrors.New("tick limit reached")

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Pack options
	Config    pack.Config `json:"config"`
	Seed      uint64      `json:"seed,omitempty"`
	TickLimit int         `json:"tick_limit,omitempty"`
	Refresh   bool        `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Background  string   `json:"background,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth float64  `json:"stroke_width,omitempty"`
	Scale       float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	ProgressEvery int         `json:"-"`
	OnTick        TickFunc    `json:"-"`
	Logger        *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Scene     *scene.Scene
	SceneHash string
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Circles    int
	Contacts   int
	Ticks      int
	Coverage   float64
	PackTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PackHit   bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json, dot, graph)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills every unset field. A zero Config becomes
// [pack.DefaultConfig]; a zero Seed becomes [DefaultSeed].
func (o *Options) SetDefaults() {
	if o.Config == (pack.Config{}) {
		o.Config = pack.DefaultConfig()
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.TickLimit == 0 {
		o.TickLimit = DefaultTickLimit
	}
	if o.ProgressEvery == 0 {
		o.ProgressEvery = DefaultProgressEvery
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Background == "" {
		o.Background = render.DefaultBackground
	}
	if o.Stroke == "" {
		o.Stroke = render.DefaultStroke
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = render.DefaultStrokeWidth
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForPack checks the packing half of the options.
func (o *Options) ValidateForPack() error {
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.TickLimit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "tick_limit must not be negative, got %d", o.TickLimit)
	}
	return nil
}

// ValidateForRender checks the rendering half of the options.
func (o *Options) ValidateForRender() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := render.ParseStyle(o.Style, o.Seed); err != nil {
		return err
	}
	if err := render.ValidateColor(o.Background); err != nil {
		return err
	}
	return render.ValidateColor(o.Stroke)
}

// Validate applies defaults and checks everything.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := o.ValidateForPack(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// RenderOptions converts the render half of o into [render.Option] values.
func (o *Options) RenderOptions() ([]render.Option, error) {
	style, err := render.ParseStyle(o.Style, o.Seed)
	if err != nil {
		return nil, err
	}
	return []render.Option{
		render.WithStyle(style),
		render.WithBackground(o.Background),
		render.WithStroke(o.Stroke),
		render.WithStrokeWidth(o.StrokeWidth),
		render.WithScale(o.Scale),
	}, nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG:
		opts.Style = o.Style
		opts.Background = o.Background
		opts.Stroke = o.Stroke
		opts.StrokeWidth = o.StrokeWidth
		if o.Style == render.StyleSketch {
			opts.StyleSeed = o.Seed
		}
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
