package pack

import (
	"slices"
	"testing"
)

// quietConfig disables placement so tests control every circle.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxAttempts = 0
	return cfg
}

func mustStepper(t *testing.T, cfg Config, src Source) *Stepper {
	t.Helper()
	s, err := NewStepper(cfg, src)
	if err != nil {
		t.Fatalf("NewStepper() error: %v", err)
	}
	return s
}

func TestTickGrowingSeedStopsAtBorder(t *testing.T) {
	f := &Field{size: 540, border: 32, circles: []Circle{NewCircle(270, 270, 108)}}
	s := mustStepper(t, quietConfig(), NewSource(1))

	stoppedAt := 0
	for tick := 1; tick <= 1000 && stoppedAt == 0; tick++ {
		res := s.Tick(f)
		if res.Complete {
			t.Fatalf("tick %d reported complete while the circle was growing", tick)
		}
		if !f.At(0).IsGrowing() {
			stoppedAt = tick
		}
	}

	// Containment is checked before growth, so tick n sees 108 + 0.5*(n-1).
	if stoppedAt != 261 {
		t.Errorf("stopped at tick %d, want 261", stoppedAt)
	}
	if r := f.At(0).Radius; r != 238 {
		t.Errorf("final radius = %v, want 238", r)
	}
	if res := s.Tick(f); !res.Complete {
		t.Error("tick after the last stop should report complete")
	}
}

func TestTickTwoCirclesCollide(t *testing.T) {
	f, _ := NewField(540, 32, 0)
	f.add(NewCircle(100, 100, 10))
	f.add(NewCircle(200, 100, 10))
	s := mustStepper(t, quietConfig(), NewSource(1))

	for tick := 1; tick <= 78; tick++ {
		res := s.Tick(f)
		if res.Stopped != 0 {
			t.Fatalf("tick %d stopped %d circles, want none", tick, res.Stopped)
		}
	}
	for i := 1; i <= 2; i++ {
		c := f.At(i)
		if !c.IsGrowing() || c.Radius != 49 {
			t.Fatalf("after 78 ticks circle %d = %+v, want growing with radius 49", i, c)
		}
	}

	res := s.Tick(f)
	if res.Stopped != 2 {
		t.Errorf("tick 79 stopped %d circles, want 2", res.Stopped)
	}
	for i := 1; i <= 2; i++ {
		c := f.At(i)
		if c.IsGrowing() || c.Radius != 49 {
			t.Errorf("after tick 79 circle %d = %+v, want stopped with radius 49", i, c)
		}
	}
	if got := f.Contacts(); !slices.Equal(got, []Contact{{A: 1, B: 2}}) {
		t.Errorf("Contacts() = %v, want [{1 2}]", got)
	}

	if res.Complete {
		t.Error("tick 79 resolved growing circles and should not report complete")
	}
	if res := s.Tick(f); !res.Complete {
		t.Error("tick 80 should report complete")
	}
}

func TestTickNoAttemptsKeepsSeedOnly(t *testing.T) {
	f, s, err := New(quietConfig(), NewSource(1))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	for tick := 1; tick <= 5; tick++ {
		res := s.Tick(f)
		if res.Added != 0 || res.Attempts != 0 {
			t.Fatalf("tick %d added %d circles in %d attempts, want none", tick, res.Added, res.Attempts)
		}
		if !res.Complete {
			t.Fatalf("tick %d should report complete with only a stopped seed", tick)
		}
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}
}

func TestTickRespectsBudgets(t *testing.T) {
	t.Run("target reached", func(t *testing.T) {
		cfg := DefaultConfig()
		f, s, _ := New(cfg, NewSource(3))
		res := s.Tick(f)
		if res.Added != cfg.TargetPerFrame {
			t.Errorf("Added = %d, want %d", res.Added, cfg.TargetPerFrame)
		}
		if res.Attempts < res.Added {
			t.Errorf("Attempts = %d, fewer than Added = %d", res.Attempts, res.Added)
		}
		if f.Len() != 1+cfg.TargetPerFrame {
			t.Errorf("Len() = %d, want %d", f.Len(), 1+cfg.TargetPerFrame)
		}
	})

	t.Run("attempts exhausted", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxAttempts = 3
		// Every draw lands on the seed.
		f, s, _ := New(cfg, &seqSource{vals: []float64{0.5}})
		res := s.Tick(f)
		if res.Added != 0 || res.Attempts != 3 {
			t.Errorf("Added = %d, Attempts = %d, want 0 and 3", res.Added, res.Attempts)
		}
		if !res.Complete {
			t.Error("starved tick with no growing circles should report complete")
		}
	})

	t.Run("new circles start small and growing", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TargetPerFrame = 1
		f, s, _ := New(cfg, &seqSource{vals: []float64{0, 0}})
		res := s.Tick(f)
		if res.Added != 1 || res.Growing != 1 {
			t.Fatalf("Added = %d, Growing = %d, want 1 and 1", res.Added, res.Growing)
		}
		// The corner circle touches the border on its first tick.
		if c := f.At(1); c.Center != (Point{32, 32}) || c.IsGrowing() || c.Radius != 2 {
			t.Errorf("placed circle = %+v, want stopped at (32, 32) with radius 2", c)
		}
	})
}

func TestTickFirstMatchPolicy(t *testing.T) {
	f, _ := NewField(540, 32, 0)
	f.add(NewCircle(100, 100, 10)) // 1
	f.add(NewCircle(150, 100, 40)) // 2: overlaps 1 and 3
	f.add(NewCircle(200, 100, 10)) // 3
	f.add(NewCircle(400, 400, 10)) // 4: alone
	s := mustStepper(t, quietConfig(), NewSource(1))

	res := s.Tick(f)
	if res.Growing != 4 {
		t.Fatalf("Growing = %d, want 4", res.Growing)
	}
	for i := 1; i <= 3; i++ {
		if f.At(i).IsGrowing() {
			t.Errorf("circle %d should have stopped", i)
		}
	}
	if !f.At(4).IsGrowing() {
		t.Error("isolated circle should keep growing")
	}
	// Circle 1 meets 2 first; circle 3 scans from the start and also meets 2.
	want := []Contact{{A: 1, B: 2}, {A: 3, B: 2}}
	if got := f.Contacts(); !slices.Equal(got, want) {
		t.Errorf("Contacts() = %v, want %v", got, want)
	}
}

func TestTickMaxRadiusStops(t *testing.T) {
	cfg := quietConfig()
	cfg.SeedRadius = 0
	cfg.MaxRadius = 5
	cfg.InitialRadius = 2
	f, s, _ := New(cfg, NewSource(1))
	f.add(NewCircle(100, 100, 2))

	ticks := 0
	for !s.Tick(f).Complete {
		ticks++
		if ticks > 100 {
			t.Fatal("circle capped by max radius never completed")
		}
	}
	if c := f.At(1); c.Radius != 5 || c.IsGrowing() {
		t.Errorf("circle = %+v, want stopped at radius 5", c)
	}
}

func TestTickDeterministic(t *testing.T) {
	run := func() []Circle {
		f, s, err := New(smallConfig(), NewSource(7))
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		for range 150 {
			s.Tick(f)
		}
		return f.Snapshot()
	}

	a, b := run(), run()
	if len(a) < 2 {
		t.Fatalf("expected circles to be placed, got %d", len(a))
	}
	if !slices.Equal(a, b) {
		t.Error("same seed should produce identical snapshots")
	}
}

func TestTickInvariants(t *testing.T) {
	cfg := smallConfig()
	f, s, err := New(cfg, NewSource(11))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	prev := f.Snapshot()
	const maxTicks = 20000
	for tick := 1; ; tick++ {
		if tick > maxTicks {
			t.Fatalf("packing did not complete within %d ticks", maxTicks)
		}
		res := s.Tick(f)
		cur := f.Snapshot()
		checkTransition(t, tick, prev, cur, cfg.MaxRadius)
		checkNoOverlap(t, tick, cur, cfg.Epsilon)
		if t.Failed() {
			return
		}
		prev = cur
		if res.Complete {
			break
		}
	}

	if f.GrowingCount() != 0 {
		t.Errorf("GrowingCount() = %d after completion", f.GrowingCount())
	}
	if f.Len() < 10 {
		t.Errorf("only %d circles packed", f.Len())
	}
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Size = 120
	cfg.Border = 8
	cfg.SeedRadius = 24
	cfg.MaxAttempts = 200
	return cfg
}

func checkTransition(t *testing.T, tick int, prev, cur []Circle, maxRadius float64) {
	t.Helper()
	if len(cur) < len(prev) {
		t.Errorf("tick %d: circle count shrank from %d to %d", tick, len(prev), len(cur))
		return
	}
	for i, p := range prev {
		c := cur[i]
		if c.Center != p.Center {
			t.Errorf("tick %d: circle %d moved", tick, i)
		}
		if c.Radius < p.Radius || c.Radius > maxRadius {
			t.Errorf("tick %d: circle %d radius %v -> %v", tick, i, p.Radius, c.Radius)
		}
		if p.State == Stopped && c.State != Stopped {
			t.Errorf("tick %d: circle %d resumed growing", tick, i)
		}
	}
}

func checkNoOverlap(t *testing.T, tick int, circles []Circle, eps float64) {
	t.Helper()
	for i := range circles {
		for j := i + 1; j < len(circles); j++ {
			a, b := circles[i], circles[j]
			if a.IsGrowing() || b.IsGrowing() {
				continue
			}
			if d := a.Center.Dist(b.Center); d < a.Radius+b.Radius-eps-1e-9 {
				t.Errorf("tick %d: circles %d and %d overlap (d=%v, r=%v+%v)", tick, i, j, d, a.Radius, b.Radius)
			}
		}
	}
}
