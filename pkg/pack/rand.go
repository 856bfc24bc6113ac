package pack

import "math/rand/v2"

// Source supplies uniform numbers in [0, 1).
//
// *rand.Rand from math/rand/v2 satisfies Source. Tests can inject a fixed
// sequence for exact replay.
type Source interface {
	Float64() float64
}

// NewSource returns a PCG-backed source. Equal seeds yield equal sequences.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
