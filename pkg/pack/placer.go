package pack

// Placer draws candidate points for new circles.
type Placer struct {
	src       Source
	clearance float64
}

// NewPlacer returns a placer that rejects points closer than clearance to an
// existing circle's edge.
func NewPlacer(src Source, clearance float64) *Placer {
	return &Placer{src: src, clearance: clearance}
}

// FindSpace draws one point uniformly inside the field's inset region and
// returns it if it clears every circle. It is a single draw, not a search:
// callers that want more chances call it again.
func (p *Placer) FindSpace(f *Field) (Point, bool) {
	span := f.size - 2*f.border
	candidate := Point{
		X: f.border + p.src.Float64()*span,
		Y: f.border + p.src.Float64()*span,
	}
	if !f.Clear(candidate, p.clearance) {
		return Point{}, false
	}
	return candidate, true
}
