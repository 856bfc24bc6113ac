// Package pkg provides the core libraries for circlepack generative circle
// packings.
//
// # Overview
//
// Circlepack fills a square with circles that grow until they touch the
// border or each other. Every tick new circles are dropped at random free
// points, every growing circle is checked against the border and its
// neighbours, and whatever is still free grows a little. When nothing grows
// any more the packing is complete.
//
// The typical data flow:
//
//	pack.Config + seed
//	         ↓
//	    [pack] package (field, placement, tick)
//	         ↓
//	    [scene] package (serializable snapshot)
//	         ↓
//	    [render] package (SVG, PNG, JSON, contact graph)
//
// # Quick Start
//
//	f, stepper, _ := pack.New(pack.DefaultConfig(), pack.NewSource(42))
//	for !stepper.Tick(f).Complete {
//	}
//	s := scene.FromField(f, scene.Run{Config: stepper.Config(), Seed: 42, Complete: true})
//	svg, _ := render.RenderSVG(s, render.WithStyle(render.NewRings()))
//
// # Main Packages
//
// [pack] - The simulation: circles, the field, rejection-sampling placement
// and the tick that resolves containment and collisions. Deterministic for a
// given seed and free of I/O.
//
// [scene] - The JSON record of a finished packing.
//
// [render] - Drawing styles (simple, rings, sketch) and exporters.
//
// [pipeline] - Pack then render with caching, used by the CLI and the HTTP
// server alike.
//
// [cache] - File, Redis and null caches plus key derivation.
//
// [observability] - Hooks for metrics and tracing around packing, rendering
// and cache access.
//
// [errors] - Structured error codes shared by every layer.
//
// # Testing
//
//	go test ./pkg/...              # All tests
//	go test -short ./...           # Skip Graphviz and network-bound tests
//	go test -run Example ./pkg/... # Examples only
//
// [pack]: https://pkg.go.dev/github.com/matzehuels/circlepack/pkg/pack
// [scene]: https://pkg.go.dev/github.com/matzehuels/circlepack/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/circlepack/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/circlepack/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/circlepack/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/circlepack/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/circlepack/pkg/errors
package pkg
