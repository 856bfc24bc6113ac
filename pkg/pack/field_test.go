package pack

import (
	"slices"
	"testing"
)

func TestNewField(t *testing.T) {
	f, err := NewField(540, 32, 108)
	if err != nil {
		t.Fatalf("NewField() error: %v", err)
	}
	if f.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", f.Len())
	}
	seed := f.At(0)
	if seed.Center != (Point{270, 270}) {
		t.Errorf("seed center = %v, want (270, 270)", seed.Center)
	}
	if seed.Radius != 108 {
		t.Errorf("seed radius = %v, want 108", seed.Radius)
	}
	if seed.IsGrowing() {
		t.Error("seed should start stopped")
	}
	if f.GrowingCount() != 0 {
		t.Errorf("GrowingCount() = %d, want 0", f.GrowingCount())
	}

	x0, y0, x1, y1 := f.Bounds()
	if x0 != 32 || y0 != 32 || x1 != 508 || y1 != 508 {
		t.Errorf("Bounds() = (%v, %v, %v, %v), want (32, 32, 508, 508)", x0, y0, x1, y1)
	}
}

func TestNewFieldInvalid(t *testing.T) {
	tests := []struct {
		name               string
		size, border, seed float64
	}{
		{"zero size", 0, 0, 0},
		{"negative border", 100, -1, 10},
		{"border fills region", 100, 50, 10},
		{"negative seed", 100, 10, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewField(tt.size, tt.border, tt.seed); err == nil {
				t.Error("NewField() should fail")
			}
		})
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	f, _ := NewField(100, 10, 5)
	f.add(NewCircle(20, 20, 2))

	before := f.Snapshot()
	snap := f.Snapshot()
	snap[0].Radius = 99
	snap[1].State = Stopped
	_ = f.Snapshot()

	if !slices.Equal(before, f.Snapshot()) {
		t.Error("mutating or repeating Snapshot() must not change the field")
	}
	if f.At(1).State != Growing {
		t.Error("Snapshot() leaked a reference to field state")
	}
}

func TestFieldClear(t *testing.T) {
	f, _ := NewField(100, 10, 20)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"seed center", Point{50, 50}, false},
		{"inside clearance", Point{50, 71.5}, false},
		{"exactly at clearance", Point{50, 72}, true},
		{"far corner", Point{15, 15}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Clear(tt.p, 2); got != tt.want {
				t.Errorf("Clear(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestFieldGrowingOrder(t *testing.T) {
	f, _ := NewField(100, 10, 5)
	f.add(NewCircle(20, 20, 2))
	stopped := NewCircle(80, 80, 2)
	stopped.Stop()
	f.add(stopped)
	f.add(NewCircle(20, 80, 2))

	if got := f.growing(); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("growing() = %v, want [1 3]", got)
	}
}
