//go:build !nopreview

// Package preview shows a packing as it grows in a desktop window.
//
// The window runs on ebiten's game loop: every frame advances the packing by
// a configurable number of ticks and redraws the field with the same ring
// styles the render package exports. When the packing completes the window
// stays open until it is closed, and the final scene is returned to the
// caller.
package preview

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/render"
	"github.com/matzehuels/circlepack/pkg/scene"
)

// DefaultTicksPerFrame matches the reference sketch, which ticked once per
// animation frame.
const DefaultTicksPerFrame = 1

// Options configures a preview window.
type Options struct {
	Config        pack.Config
	Seed          uint64
	Style         render.Style
	Background    string
	Stroke        string
	StrokeWidth   float64
	TicksPerFrame int
	// Title defaults to "circlepack".
	Title string
}

// Game is the ebiten game driving one packing.
type Game struct {
	ctx     context.Context
	field   *pack.Field
	stepper *pack.Stepper
	opts    Options

	background color.RGBA
	stroke     color.RGBA

	tick     int
	paused   bool
	complete bool
}

// Ensure Game implements ebiten.Game.
var _ ebiten.Game = (*Game)(nil)

// NewGame validates opts and builds the field. ctx ends the game loop when
// it is done.
func NewGame(ctx context.Context, opts Options) (*Game, error) {
	if opts.Style == nil {
		opts.Style = render.NewRings()
	}
	if opts.Background == "" {
		opts.Background = render.DefaultBackground
	}
	if opts.Stroke == "" {
		opts.Stroke = render.DefaultStroke
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = render.DefaultStrokeWidth
	}
	if opts.TicksPerFrame <= 0 {
		opts.TicksPerFrame = DefaultTicksPerFrame
	}
	if opts.Title == "" {
		opts.Title = "circlepack"
	}

	bg, err := render.ParseColor(opts.Background)
	if err != nil {
		return nil, err
	}
	fg, err := render.ParseColor(opts.Stroke)
	if err != nil {
		return nil, err
	}
	f, s, err := pack.New(opts.Config, pack.NewSource(opts.Seed))
	if err != nil {
		return nil, err
	}
	return &Game{
		ctx:        ctx,
		field:      f,
		stepper:    s,
		opts:       opts,
		background: bg,
		stroke:     fg,
	}, nil
}

// Run opens a window and blocks until it is closed. The returned scene is
// marked complete only if the packing finished before the window closed.
func Run(ctx context.Context, opts Options) (*scene.Scene, error) {
	g, err := NewGame(ctx, opts)
	if err != nil {
		return nil, err
	}
	size := int(g.field.Size())
	ebiten.SetWindowSize(size, size)
	ebiten.SetWindowTitle(g.opts.Title)
	if err := ebiten.RunGame(g); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return g.Scene(), nil
}

// Update handles input and advances the packing.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if !g.paused {
		g.Advance(g.opts.TicksPerFrame)
	}
	return nil
}

// Advance runs up to n ticks and reports whether the packing is complete.
func (g *Game) Advance(n int) bool {
	for i := 0; i < n && !g.complete; i++ {
		g.tick++
		g.complete = g.stepper.Tick(g.field).Complete
	}
	return g.complete
}

// Draw clears the screen and strokes every ring of every circle.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	width := float32(g.opts.StrokeWidth)
	for i := 0; i < g.field.Len(); i++ {
		for _, ring := range g.opts.Style.Rings(sceneCircle(g.field.At(i)), i) {
			g.drawRing(screen, ring, width)
		}
	}
}

func (g *Game) drawRing(screen *ebiten.Image, ring render.Ring, width float32) {
	if len(ring.Jitter) == 0 {
		vector.StrokeCircle(screen, float32(ring.CX), float32(ring.CY), float32(ring.R), width, g.stroke, true)
		return
	}
	pts := ring.Points()
	for k, p := range pts {
		q := pts[(k+1)%len(pts)]
		vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), width, g.stroke, true)
	}
}

// Layout keeps one logical pixel per unit of the region.
func (g *Game) Layout(_, _ int) (int, int) {
	size := int(g.field.Size())
	return size, size
}

// Tick returns the number of ticks run so far.
func (g *Game) Tick() int { return g.tick }

// Complete reports whether the packing has finished.
func (g *Game) Complete() bool { return g.complete }

// Scene snapshots the current field.
func (g *Game) Scene() *scene.Scene {
	return scene.FromField(g.field, scene.Run{
		Config:   g.opts.Config,
		Seed:     g.opts.Seed,
		Ticks:    g.tick,
		Complete: g.complete,
	})
}

func sceneCircle(c pack.Circle) scene.Circle {
	return scene.Circle{X: c.Center.X, Y: c.Center.Y, R: c.Radius, State: c.State.String()}
}
