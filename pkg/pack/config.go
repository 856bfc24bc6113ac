package pack

import (
	"github.com/matzehuels/circlepack/pkg/errors"
)

// Defaults mirror the reference artwork: a 540 unit square with a 32 unit
// border and a seed circle covering a fifth of the side.
const (
	DefaultSize           = 540.0
	DefaultBorder         = 32.0
	DefaultSeedRatio      = 0.2
	DefaultMaxAttempts    = 1 << 16
	DefaultTargetPerFrame = 4
	DefaultGrowthStep     = 0.5
	DefaultMaxRadius      = 600.0
	DefaultEpsilon        = 2.0
	DefaultInitialRadius  = 2.0
	DefaultClearance      = 2.0
)

// Config holds every tunable of a packing run.
//
// The zero value is not usable; start from [DefaultConfig] and override
// fields as needed.
type Config struct {
	// Size is the side length of the square region.
	Size float64 `json:"size" toml:"size"`
	// Border is the inward margin used for placement and containment.
	Border float64 `json:"border" toml:"border"`
	// SeedRadius is the radius of the stopped seed circle at the center.
	SeedRadius float64 `json:"seed_radius" toml:"seed_radius"`

	// MaxAttempts caps placement draws per tick. Zero disables placement.
	MaxAttempts int `json:"max_attempts" toml:"max_attempts"`
	// TargetPerFrame is the number of new circles wanted per tick.
	TargetPerFrame int `json:"target_per_frame" toml:"target_per_frame"`

	// GrowthStep is the radius increment per tick.
	GrowthStep float64 `json:"growth_step" toml:"growth_step"`
	// MaxRadius caps every radius.
	MaxRadius float64 `json:"max_radius" toml:"max_radius"`
	// Epsilon is the collision tolerance.
	Epsilon float64 `json:"epsilon" toml:"epsilon"`
	// InitialRadius is the radius of freshly placed circles.
	InitialRadius float64 `json:"initial_radius" toml:"initial_radius"`
	// Clearance is the distance a candidate point must keep from every
	// existing circle's edge.
	Clearance float64 `json:"clearance" toml:"clearance"`
}

// DefaultConfig returns the configuration of the reference artwork.
func DefaultConfig() Config {
	return Config{
		Size:           DefaultSize,
		Border:         DefaultBorder,
		SeedRadius:     DefaultSize * DefaultSeedRatio,
		MaxAttempts:    DefaultMaxAttempts,
		TargetPerFrame: DefaultTargetPerFrame,
		GrowthStep:     DefaultGrowthStep,
		MaxRadius:      DefaultMaxRadius,
		Epsilon:        DefaultEpsilon,
		InitialRadius:  DefaultInitialRadius,
		Clearance:      DefaultClearance,
	}
}

// Validate reports the first setting that would produce an ill-formed region
// or a run that cannot make progress. Errors carry
// [errors.ErrCodeInvalidConfig].
func (c Config) Validate() error {
	if err := validateRegion(c.Size, c.Border, c.SeedRadius); err != nil {
		return err
	}
	checks := []error{
		errors.RequireNonNegativeInt("max_attempts", c.MaxAttempts),
		errors.RequireNonNegativeInt("target_per_frame", c.TargetPerFrame),
		errors.RequirePositive("growth_step", c.GrowthStep),
		errors.RequirePositive("max_radius", c.MaxRadius),
		errors.RequireNonNegative("epsilon", c.Epsilon),
		errors.RequireNonNegative("initial_radius", c.InitialRadius),
		errors.RequireNonNegative("clearance", c.Clearance),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if c.SeedRadius > c.MaxRadius {
		return errors.Invalid("seed_radius", "%v exceeds max_radius %v", c.SeedRadius, c.MaxRadius)
	}
	if c.InitialRadius > c.MaxRadius {
		return errors.Invalid("initial_radius", "%v exceeds max_radius %v", c.InitialRadius, c.MaxRadius)
	}
	// Stopped circles may overlap by at most epsilon: two circles closing at
	// 2*growth_step per tick must be caught inside that slack, and a fresh
	// circle must fit in the gap the placer leaves.
	if c.GrowthStep > c.Epsilon {
		return errors.Invalid("growth_step", "%v exceeds epsilon %v", c.GrowthStep, c.Epsilon)
	}
	if c.Clearance < c.InitialRadius-c.Epsilon {
		return errors.Invalid("clearance", "%v is below initial_radius - epsilon (%v)", c.Clearance, c.InitialRadius-c.Epsilon)
	}
	return nil
}

func validateRegion(size, border, seedRadius float64) error {
	if err := errors.RequirePositive("size", size); err != nil {
		return err
	}
	if err := errors.RequireNonNegative("border", border); err != nil {
		return err
	}
	if border >= size/2 {
		return errors.Invalid("border", "%v leaves no room inside a region of size %v", border, size)
	}
	return errors.RequireNonNegative("seed_radius", seedRadius)
}
