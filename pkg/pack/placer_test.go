package pack

import "testing"

// seqSource replays a fixed sequence of values.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestFindSpace(t *testing.T) {
	tests := []struct {
		name   string
		draws  []float64
		wantOK bool
		want   Point
	}{
		{"corner of inset", []float64{0, 0}, true, Point{32, 32}},
		{"inside seed", []float64{0.5, 0.5}, false, Point{}},
		{"just outside seed clearance", []float64{0.5, 0.5 + 111.0/476}, true, Point{270, 381}},
		{"just inside seed clearance", []float64{0.5, 0.5 + 109.0/476}, false, Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := NewField(540, 32, 108)
			p := NewPlacer(&seqSource{vals: tt.draws}, 2)

			got, ok := p.FindSpace(f)
			if ok != tt.wantOK {
				t.Fatalf("FindSpace() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (absDiff(got.X, tt.want.X) > 1e-9 || absDiff(got.Y, tt.want.Y) > 1e-9) {
				t.Errorf("FindSpace() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindSpaceSingleDraw(t *testing.T) {
	f, _ := NewField(540, 32, 108)
	src := &seqSource{vals: []float64{0.5, 0.5, 0, 0}}
	p := NewPlacer(src, 2)

	if _, ok := p.FindSpace(f); ok {
		t.Fatal("first draw lands on the seed and should fail")
	}
	if src.i != 2 {
		t.Errorf("FindSpace() consumed %d values, want 2", src.i)
	}
	if _, ok := p.FindSpace(f); !ok {
		t.Fatal("second draw should succeed")
	}
	if f.Len() != 1 {
		t.Error("FindSpace() must not modify the field")
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
