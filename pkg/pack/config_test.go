package pack

import (
	"testing"

	"github.com/matzehuels/circlepack/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error: %v", err)
	}
	if cfg.SeedRadius != 108 {
		t.Errorf("SeedRadius = %v, want 108", cfg.SeedRadius)
	}
	if cfg.MaxAttempts != 65536 {
		t.Errorf("MaxAttempts = %v, want 65536", cfg.MaxAttempts)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string // empty when valid
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero attempts disables placement", func(c *Config) { c.MaxAttempts = 0 }, ""},
		{"zero target", func(c *Config) { c.TargetPerFrame = 0 }, ""},
		{"zero border", func(c *Config) { c.Border = 0 }, ""},
		{"zero seed", func(c *Config) { c.SeedRadius = 0 }, ""},
		{"epsilon equal to growth step", func(c *Config) { c.Epsilon = c.GrowthStep }, ""},
		{"clearance exactly fits a new circle", func(c *Config) { c.InitialRadius = 4 }, ""},

		{"zero size", func(c *Config) { c.Size = 0 }, "size"},
		{"negative border", func(c *Config) { c.Border = -1 }, "border"},
		{"border at half size", func(c *Config) { c.Border = 270 }, "border"},
		{"border beyond half size", func(c *Config) { c.Border = 300 }, "border"},
		{"negative seed", func(c *Config) { c.SeedRadius = -1 }, "seed_radius"},
		{"negative attempts", func(c *Config) { c.MaxAttempts = -1 }, "max_attempts"},
		{"negative target", func(c *Config) { c.TargetPerFrame = -4 }, "target_per_frame"},
		{"zero growth step", func(c *Config) { c.GrowthStep = 0 }, "growth_step"},
		{"zero max radius", func(c *Config) { c.MaxRadius = 0 }, "max_radius"},
		{"seed above max radius", func(c *Config) { c.MaxRadius = 50 }, "seed_radius"},
		{"initial above max radius", func(c *Config) { c.SeedRadius = 1; c.MaxRadius = 1 }, "initial_radius"},
		{"negative epsilon", func(c *Config) { c.Epsilon = -2 }, "epsilon"},
		{"negative initial radius", func(c *Config) { c.InitialRadius = -2 }, "initial_radius"},
		{"negative clearance", func(c *Config) { c.Clearance = -1 }, "clearance"},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }, "growth_step"},
		{"growth outruns epsilon", func(c *Config) { c.GrowthStep = 3 }, "growth_step"},
		{"new circle wider than clearance", func(c *Config) { c.InitialRadius = 5 }, "clearance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != (tt.field != "") {
				t.Fatalf("Validate() error = %v, want field %q", err, tt.field)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
			if got := errors.FieldOf(err); got != tt.field {
				t.Errorf("Validate() field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestNewStepperRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Border = cfg.Size
	if _, err := NewStepper(cfg, NewSource(1)); err == nil {
		t.Fatal("NewStepper() should reject a border that leaves no room")
	}
	if _, _, err := New(cfg, NewSource(1)); err == nil {
		t.Fatal("New() should reject a border that leaves no room")
	}
}
