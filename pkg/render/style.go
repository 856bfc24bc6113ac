package render

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/scene"
)

// Style names accepted by [ParseStyle].
const (
	StyleSimple = "simple"
	StyleRings  = "rings"
	StyleSketch = "sketch"
)

// Ring defaults for the [Rings] style.
const (
	DefaultMinRadius = 12
	DefaultMinSteps  = 4
	ringSpacing      = 2
)

// Style chooses the outlines drawn for each circle.
type Style interface {
	// Name returns the style name used in cache keys and flags.
	Name() string
	// Rings returns the outlines for circle i, innermost first.
	Rings(c scene.Circle, i int) []Ring
}

// Ring is one closed outline. A ring without jitter is a true circle;
// otherwise Jitter holds radial offsets at evenly spaced angles.
type Ring struct {
	CX, CY, R float64
	Jitter    []float64
}

// Points returns the outline vertices of a jittered ring.
func (r Ring) Points() []pack.Point {
	n := len(r.Jitter)
	pts := make([]pack.Point, n)
	for k, j := range r.Jitter {
		a := 2 * math.Pi * float64(k) / float64(n)
		pts[k] = pack.Point{X: r.CX + (r.R+j)*math.Cos(a), Y: r.CY + (r.R+j)*math.Sin(a)}
	}
	return pts
}

// Simple draws one outline per circle.
type Simple struct{}

func (Simple) Name() string { return StyleSimple }

func (Simple) Rings(c scene.Circle, _ int) []Ring {
	return []Ring{{CX: c.X, CY: c.Y, R: c.R}}
}

// Rings draws concentric outlines inside circles larger than MinRadius.
type Rings struct {
	MinRadius float64
	MinSteps  int
}

// NewRings returns the ring style with its default thresholds.
func NewRings() Rings {
	return Rings{MinRadius: DefaultMinRadius, MinSteps: DefaultMinSteps}
}

func (Rings) Name() string { return StyleRings }

func (s Rings) Rings(c scene.Circle, _ int) []Ring {
	if c.R <= s.MinRadius {
		return []Ring{{CX: c.X, CY: c.Y, R: c.R}}
	}
	steps := min(int(math.Floor(c.R/ringSpacing)), s.MinSteps)
	out := make([]Ring, 0, steps)
	for k := steps - 1; k >= 0; k-- {
		out = append(out, Ring{CX: c.X, CY: c.Y, R: c.R - ringSpacing*float64(k)})
	}
	return out
}

// Sketch is [Rings] with a hand-drawn wobble. Each circle's wobble depends
// only on Seed and the circle index.
type Sketch struct {
	Base Rings
	Seed uint64
}

// NewSketch returns the sketch style for seed.
func NewSketch(seed uint64) Sketch {
	return Sketch{Base: NewRings(), Seed: seed}
}

func (Sketch) Name() string { return StyleSketch }

func (s Sketch) Rings(c scene.Circle, i int) []Ring {
	rings := s.Base.Rings(c, i)
	seed := s.Seed ^ uint64(i+1)*0x9e3779b97f4a7c15
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	for k := range rings {
		rings[k].Jitter = wobble(rng, rings[k].R)
	}
	return rings
}

func wobble(rng *rand.Rand, r float64) []float64 {
	n := max(8, int(r/3))
	amp := min(1.2, r*0.08)
	out := make([]float64, n)
	for k := range out {
		out[k] = (rng.Float64()*2 - 1) * amp
	}
	return out
}

// ParseStyle returns the style with the given name. The seed only affects
// [Sketch].
func ParseStyle(name string, seed uint64) (Style, error) {
	switch name {
	case StyleSimple:
		return Simple{}, nil
	case StyleRings, "":
		return NewRings(), nil
	case StyleSketch:
		return NewSketch(seed), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: simple, rings, sketch)", name)
	}
}
