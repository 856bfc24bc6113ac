package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/scene"
)

// RenderSVG draws every circle of s in creation order.
func RenderSVG(s *scene.Scene, opts ...Option) ([]byte, error) {
	r, err := newRenderer(opts...)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	size := num(s.Size)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		size, size, size, size)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	fmt.Fprintf(&buf, `  <g fill="none" stroke="%s" stroke-width="%s">`+"\n", r.stroke, num(r.strokeWidth))

	for i, c := range s.Circles {
		for _, ring := range r.style.Rings(c, i) {
			writeRing(&buf, ring)
		}
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes(), nil
}

func writeRing(buf *bytes.Buffer, ring Ring) {
	if len(ring.Jitter) == 0 {
		fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s"/>`+"\n", num(ring.CX), num(ring.CY), num(ring.R))
		return
	}
	fmt.Fprintf(buf, `    <path d="%s"/>`+"\n", smoothPath(ring.Points()))
}

// smoothPath closes pts with quadratic curves through the edge midpoints.
func smoothPath(pts []pack.Point) string {
	var b bytes.Buffer
	n := len(pts)
	start := mid(pts[n-1], pts[0])
	fmt.Fprintf(&b, "M%.2f,%.2f", start.X, start.Y)
	for k, p := range pts {
		m := mid(p, pts[(k+1)%n])
		fmt.Fprintf(&b, " Q%.2f,%.2f %.2f,%.2f", p.X, p.Y, m.X, m.Y)
	}
	b.WriteString(" Z")
	return b.String()
}

func mid(a, b pack.Point) pack.Point {
	return pack.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
