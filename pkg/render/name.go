package render

import (
	"fmt"
	"time"

	"github.com/matzehuels/circlepack/pkg/pack"
)

// ExportName returns the default artifact base name for a packing, stamped
// with t in UTC:
//
//	Packed_Circles-MINSTEPS_4-MINRADIUS_12-MAXATTEMPTS_65536-PERFRAME_4-SIZE_540-BORDER_32-2026-01-02T15:04:05.000Z
func ExportName(cfg pack.Config, rings Rings, t time.Time) string {
	return fmt.Sprintf("Packed_Circles-MINSTEPS_%d-MINRADIUS_%s-MAXATTEMPTS_%d-PERFRAME_%d-SIZE_%s-BORDER_%s-%s",
		rings.MinSteps, num(rings.MinRadius), cfg.MaxAttempts, cfg.TargetPerFrame,
		num(cfg.Size), num(cfg.Border), t.UTC().Format("2006-01-02T15:04:05.000Z"))
}
