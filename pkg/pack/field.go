package pack

// Contact records that circles A and B stopped each other, by index.
type Contact struct {
	A, B int
}

// Field owns the circles of one packing and the region they live in.
//
// Circles are kept in creation order; the seed is always index 0. Circles
// are only ever appended, never removed or reordered.
type Field struct {
	size, border float64
	circles      []Circle
	contacts     []Contact
}

// NewField creates a field of the given size and border with a stopped seed
// circle of seedRadius at the center.
func NewField(size, border, seedRadius float64) (*Field, error) {
	if err := validateRegion(size, border, seedRadius); err != nil {
		return nil, err
	}
	seed := NewCircle(size/2, size/2, seedRadius)
	seed.Stop()
	return &Field{
		size:    size,
		border:  border,
		circles: []Circle{seed},
	}, nil
}

// Size returns the side length of the region.
func (f *Field) Size() float64 { return f.size }

// Border returns the inward margin.
func (f *Field) Border() float64 { return f.border }

// Bounds returns the inset rectangle used for placement and containment.
func (f *Field) Bounds() (x0, y0, x1, y1 float64) {
	return f.border, f.border, f.size - f.border, f.size - f.border
}

// Len returns the number of circles, seed included.
func (f *Field) Len() int { return len(f.circles) }

// At returns a copy of circle i.
func (f *Field) At(i int) Circle { return f.circles[i] }

// Snapshot returns a copy of all circles in creation order. Mutating the
// result does not affect the field.
func (f *Field) Snapshot() []Circle {
	out := make([]Circle, len(f.circles))
	copy(out, f.circles)
	return out
}

// Contacts returns a copy of the collision pairs resolved so far.
func (f *Field) Contacts() []Contact {
	out := make([]Contact, len(f.contacts))
	copy(out, f.contacts)
	return out
}

// GrowingCount returns how many circles are still growing.
func (f *Field) GrowingCount() int {
	n := 0
	for _, c := range f.circles {
		if c.IsGrowing() {
			n++
		}
	}
	return n
}

// Clear reports whether p keeps at least clearance from the edge of every
// circle in the field.
func (f *Field) Clear(p Point, clearance float64) bool {
	for _, c := range f.circles {
		if p.Dist(c.Center)-clearance < c.Radius {
			return false
		}
	}
	return true
}

// firstIntersecting returns the index of the first circle other than i that
// intersects circle i, or -1.
func (f *Field) firstIntersecting(i int, eps float64) int {
	c := f.circles[i]
	for j, other := range f.circles {
		if j != i && c.Intersects(other, eps) {
			return j
		}
	}
	return -1
}

// growing returns the indices of growing circles in creation order.
func (f *Field) growing() []int {
	var idx []int
	for i, c := range f.circles {
		if c.IsGrowing() {
			idx = append(idx, i)
		}
	}
	return idx
}

func (f *Field) add(c Circle) int {
	f.circles = append(f.circles, c)
	return len(f.circles) - 1
}
