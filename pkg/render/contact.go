package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/circlepack/pkg/scene"
)

// ToDOT converts the contact pairs of s to an undirected Graphviz graph.
// Each node is a circle index sized by its radius; circles that never
// touched another circle are omitted, except the seed.
func ToDOT(s *scene.Scene) string {
	var buf bytes.Buffer
	buf.WriteString("graph contacts {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, fixedsize=true, style=filled, fillcolor=white, fontsize=10];\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	nodes := []int{0}
	for _, c := range s.Contacts {
		nodes = append(nodes, c.A, c.B)
	}
	slices.Sort(nodes)
	nodes = slices.Compact(nodes)

	for _, i := range nodes {
		fmt.Fprintf(&buf, "  \"%d\" [label=\"%d\", width=%.2f];\n", i, i, nodeWidth(s.Circles[i].R))
	}

	buf.WriteString("\n")
	for _, c := range s.Contacts {
		fmt.Fprintf(&buf, "  \"%d\" -- \"%d\";\n", c.A, c.B)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeWidth maps a radius to a node diameter in inches.
func nodeWidth(r float64) float64 {
	return min(max(r/36, 0.3), 2)
}

// RenderContactSVG lays out a DOT graph with Graphviz and returns SVG.
func RenderContactSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz point-based root element with a
// plain pixel-sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
