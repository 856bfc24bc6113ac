// Package pack grows non-overlapping circles inside a square region.
//
// # Overview
//
// A packing starts from a [Field] holding a single seed circle at the center
// of the region. Each call to [Stepper.Tick] advances the whole field by one
// unit of simulated time:
//
//  1. Placement: up to Config.TargetPerFrame new circles are seeded at random
//     free points, spending at most Config.MaxAttempts rejection-sampling draws.
//  2. Resolution: every circle that is still growing is tested against the
//     region border and against every other circle. A circle that touches the
//     border stops; a circle that touches another circle stops together with
//     the first circle it touches.
//  3. Growth: every growing circle gains Config.GrowthStep of radius.
//
// The order is load-bearing: growing before resolving would let a circle
// overshoot its stopping radius.
//
// # Usage
//
//	cfg := pack.DefaultConfig()
//	field, stepper, err := pack.New(cfg, pack.NewSource(42))
//	if err != nil {
//	    return err
//	}
//	for {
//	    if res := stepper.Tick(field); res.Complete {
//	        break
//	    }
//	}
//	circles := field.Snapshot()
//
// # Collision Rules
//
// Two circles intersect when the distance between their centers, minus
// Config.Epsilon, is at most the sum of their radii. The tolerance makes
// circles stick slightly before exact tangency, so a finished packing never
// has hairline gaps caused by floating point error.
//
// Collisions are resolved first-match: a growing circle scans the field in
// insertion order and stops with the first circle it intersects, not the
// closest one. With a deterministic [Source] the insertion order is
// deterministic, so the outcome is reproducible.
//
// # Completion
//
// [TickResult].Complete reports whether the set of growing circles was empty
// when the tick began resolving. The tick that stops the last circle therefore
// reports false, and the following tick reports true.
//
// # Concurrency
//
// Fields and steppers are not safe for concurrent use. A tick never blocks;
// drivers decide the tick cadence and may stop at any point.
package pack
