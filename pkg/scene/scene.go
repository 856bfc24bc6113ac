// Package scene is the serializable record of one packing run.
//
// A [Scene] captures everything needed to re-render a finished packing
// without re-running it: the region, the configuration and seed that
// produced it, every circle in creation order, and the contact pairs found
// while resolving collisions. Scenes are what the pipeline caches and what
// "circlepack render" reads back.
package scene

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/circlepack/pkg/pack"
)

// Scene is a finished (or interrupted) packing.
type Scene struct {
	ID        uuid.UUID   `json:"id"`
	Size      float64     `json:"size"`
	Border    float64     `json:"border"`
	Seed      uint64      `json:"seed"`
	Ticks     int         `json:"ticks"`
	Complete  bool        `json:"complete"`
	CreatedAt time.Time   `json:"created_at"`
	Config    pack.Config `json:"config"`
	Circles   []Circle    `json:"circles"`
	Contacts  []Contact   `json:"contacts,omitempty"`
}

// Circle is the exported form of a packed circle. Index 0 is the seed.
type Circle struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	State string  `json:"state"`
}

// Contact is a pair of circle indices that stopped each other.
type Contact struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Run describes how a field was produced.
type Run struct {
	Config   pack.Config
	Seed     uint64
	Ticks    int
	Complete bool
}

// FromField snapshots f into a new scene with a fresh ID.
func FromField(f *pack.Field, run Run) *Scene {
	circles := f.Snapshot()
	contacts := f.Contacts()

	s := &Scene{
		ID:        uuid.New(),
		Size:      f.Size(),
		Border:    f.Border(),
		Seed:      run.Seed,
		Ticks:     run.Ticks,
		Complete:  run.Complete,
		CreatedAt: time.Now().UTC(),
		Config:    run.Config,
		Circles:   make([]Circle, len(circles)),
	}
	for i, c := range circles {
		s.Circles[i] = Circle{X: c.Center.X, Y: c.Center.Y, R: c.Radius, State: c.State.String()}
	}
	if len(contacts) > 0 {
		s.Contacts = make([]Contact, len(contacts))
		for i, c := range contacts {
			s.Contacts[i] = Contact{A: c.A, B: c.B}
		}
	}
	return s
}

// Stopped returns how many circles have stopped growing.
func (s *Scene) Stopped() int {
	n := 0
	for _, c := range s.Circles {
		if c.State == pack.Stopped.String() {
			n++
		}
	}
	return n
}

// Coverage returns the fraction of the inner region covered by circle
// area. Circles may overlap by up to the collision tolerance, so the value
// is an estimate.
func (s *Scene) Coverage() float64 {
	inner := s.Size - 2*s.Border
	if inner <= 0 {
		return 0
	}
	var area float64
	for _, c := range s.Circles {
		area += c.R * c.R
	}
	return area * math.Pi / (inner * inner)
}

// MaxRadius returns the largest circle radius.
func (s *Scene) MaxRadius() float64 {
	var r float64
	for _, c := range s.Circles {
		r = max(r, c.R)
	}
	return r
}
