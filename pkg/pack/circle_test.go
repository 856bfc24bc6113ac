package pack

import "testing"

func TestNewCircleRoundsCenter(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		wantX float64
		wantY float64
	}{
		{"already integral", 10, 20, 10, 20},
		{"round down", 10.2, 20.49, 10, 20},
		{"round up", 10.7, 20.51, 11, 21},
		{"half rounds up", 10.5, 20.5, 11, 21},
		{"negative half rounds up", -0.5, -1.5, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCircle(tt.x, tt.y, 2)
			if c.Center.X != tt.wantX || c.Center.Y != tt.wantY {
				t.Errorf("center = (%v, %v), want (%v, %v)", c.Center.X, c.Center.Y, tt.wantX, tt.wantY)
			}
			if !c.IsGrowing() {
				t.Error("new circle should be growing")
			}
			if c.Radius != 2 {
				t.Errorf("Radius = %v, want 2", c.Radius)
			}
		})
	}
}

func TestCircleIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Circle
		eps  float64
		want bool
	}{
		{
			name: "far apart",
			a:    Circle{Center: Point{0, 0}, Radius: 10},
			b:    Circle{Center: Point{100, 0}, Radius: 10},
			eps:  2,
			want: false,
		},
		{
			name: "exact tangency",
			a:    Circle{Center: Point{0, 0}, Radius: 10},
			b:    Circle{Center: Point{20, 0}, Radius: 10},
			eps:  0,
			want: true,
		},
		{
			name: "gap equal to tolerance sticks",
			a:    Circle{Center: Point{0, 0}, Radius: 10},
			b:    Circle{Center: Point{22, 0}, Radius: 10},
			eps:  2,
			want: true,
		},
		{
			name: "gap just above tolerance",
			a:    Circle{Center: Point{0, 0}, Radius: 10},
			b:    Circle{Center: Point{22.5, 0}, Radius: 10},
			eps:  2,
			want: false,
		},
		{
			name: "diagonal",
			a:    Circle{Center: Point{0, 0}, Radius: 2},
			b:    Circle{Center: Point{3, 4}, Radius: 1},
			eps:  2,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b, tt.eps); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a, tt.eps); got != tt.want {
				t.Errorf("Intersects() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCircleContain(t *testing.T) {
	tests := []struct {
		name   string
		circle Circle
		want   bool
	}{
		{"inside", Circle{Center: Point{50, 50}, Radius: 10}, false},
		{"touches left", Circle{Center: Point{20, 50}, Radius: 10}, true},
		{"touches right", Circle{Center: Point{80, 50}, Radius: 10}, true},
		{"touches top", Circle{Center: Point{50, 20}, Radius: 10}, true},
		{"crosses bottom", Circle{Center: Point{50, 85}, Radius: 10}, true},
		{"half unit clear", Circle{Center: Point{20.5, 50}, Radius: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.circle
			if got := c.Contain(10, 10, 90, 90); got != tt.want {
				t.Errorf("Contain() = %v, want %v", got, tt.want)
			}
			if c.IsGrowing() == tt.want {
				t.Errorf("State = %v after Contain() = %v", c.State, tt.want)
			}
		})
	}
}

func TestCircleContainIsOneWay(t *testing.T) {
	c := Circle{Center: Point{10, 50}, Radius: 10}
	c.Contain(10, 10, 90, 90)
	c.Center = Point{50, 50}
	if c.Contain(10, 10, 90, 90) {
		t.Fatal("Contain() should report no contact away from the border")
	}
	if c.IsGrowing() {
		t.Error("a stopped circle must stay stopped")
	}
}

func TestCircleGrow(t *testing.T) {
	t.Run("growing circle gains step", func(t *testing.T) {
		c := Circle{Radius: 2}
		c.Grow(0.5, 600)
		if c.Radius != 2.5 {
			t.Errorf("Radius = %v, want 2.5", c.Radius)
		}
	})

	t.Run("stopped circle is unchanged", func(t *testing.T) {
		c := Circle{Radius: 2, State: Stopped}
		c.Grow(0.5, 600)
		if c.Radius != 2 {
			t.Errorf("Radius = %v, want 2", c.Radius)
		}
	})

	t.Run("clamped at max radius and stopped", func(t *testing.T) {
		c := Circle{Radius: 9.8}
		c.Grow(0.5, 10)
		if c.Radius != 10 {
			t.Errorf("Radius = %v, want 10", c.Radius)
		}
		if c.IsGrowing() {
			t.Error("circle at max radius should stop")
		}
	})

	t.Run("linear growth", func(t *testing.T) {
		c := Circle{Radius: 2}
		for range 10 {
			c.Grow(0.5, 600)
		}
		if c.Radius != 7 {
			t.Errorf("Radius = %v, want 7", c.Radius)
		}
	})
}

func TestStateString(t *testing.T) {
	if Growing.String() != "growing" {
		t.Errorf("Growing.String() = %q", Growing.String())
	}
	if Stopped.String() != "stopped" {
		t.Errorf("Stopped.String() = %q", Stopped.String())
	}
}
