package errors

import (
	"math"
	"testing"
)

func TestRequire(t *testing.T) {
	tests := []struct {
		name    string
		check   func() error
		wantErr bool
	}{
		{"positive size", func() error { return RequirePositive("size", 540) }, false},
		{"tiny growth step", func() error { return RequirePositive("growth_step", 1e-9) }, false},
		{"zero size", func() error { return RequirePositive("size", 0) }, true},
		{"negative size", func() error { return RequirePositive("size", -1) }, true},
		{"nan size", func() error { return RequirePositive("size", math.NaN()) }, true},
		{"infinite max radius", func() error { return RequirePositive("max_radius", math.Inf(1)) }, true},

		{"zero border", func() error { return RequireNonNegative("border", 0) }, false},
		{"negative border", func() error { return RequireNonNegative("border", -0.5) }, true},
		{"nan epsilon", func() error { return RequireNonNegative("epsilon", math.NaN()) }, true},
		{"negative infinite clearance", func() error { return RequireNonNegative("clearance", math.Inf(-1)) }, true},

		{"zero attempts", func() error { return RequireNonNegativeInt("max_attempts", 0) }, false},
		{"negative attempts", func() error { return RequireNonNegativeInt("max_attempts", -1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
			}
			if FieldOf(err) == "" {
				t.Error("validation errors should name their field")
			}
		})
	}
}
