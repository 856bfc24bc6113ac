package render

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/scene"
)

// MaxImageSide bounds the pixel width of a PNG; the canvas alone costs
// 4 bytes per pixel.
const MaxImageSide = 16384

// RenderPNG rasterizes the same drawing as [RenderSVG] at the configured
// scale.
func RenderPNG(s *scene.Scene, opts ...Option) ([]byte, error) {
	r, err := newRenderer(opts...)
	if err != nil {
		return nil, err
	}

	side := math.Ceil(s.Size * r.scale)
	if !(side >= 1 && side <= MaxImageSide) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"image side %v px (size %v at scale %v) is outside 1..%d", side, s.Size, r.scale, MaxImageSide)
	}
	px := int(side)
	dc := gg.NewContext(px, px)
	dc.SetHexColor(r.background)
	dc.Clear()

	dc.Scale(r.scale, r.scale)
	dc.SetHexColor(r.stroke)
	// Line width is in device pixels.
	dc.SetLineWidth(r.strokeWidth * r.scale)

	for i, c := range s.Circles {
		for _, ring := range r.style.Rings(c, i) {
			traceRing(dc, ring)
			dc.Stroke()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func traceRing(dc *gg.Context, ring Ring) {
	if len(ring.Jitter) == 0 {
		dc.DrawCircle(ring.CX, ring.CY, ring.R)
		return
	}
	pts := ring.Points()
	n := len(pts)
	start := mid(pts[n-1], pts[0])
	dc.NewSubPath()
	dc.MoveTo(start.X, start.Y)
	for k, p := range pts {
		m := mid(p, pts[(k+1)%n])
		dc.QuadraticTo(p.X, p.Y, m.X, m.Y)
	}
	dc.ClosePath()
}
