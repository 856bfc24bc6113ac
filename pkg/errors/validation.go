package errors

import "math"

// RequirePositive rejects v unless it is finite and above zero.
func RequirePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Invalid(field, "must be positive, got %v", v)
	}
	return nil
}

// RequireNonNegative rejects v unless it is finite and at least zero.
func RequireNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return Invalid(field, "must not be negative, got %v", v)
	}
	return nil
}

// RequireNonNegativeInt is the integer form of [RequireNonNegative].
func RequireNonNegativeInt(field string, v int) error {
	if v < 0 {
		return Invalid(field, "must not be negative, got %d", v)
	}
	return nil
}
