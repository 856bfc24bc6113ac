package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/observability"
	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/scene"
)

// Pack runs a packing without caching. It stops at the first tick that
// reports completion, when ctx is done, or after opts.TickLimit ticks.
func Pack(ctx context.Context, opts Options, onTick TickFunc) (*scene.Scene, error) {
	opts.SetDefaults()
	f, stepper, err := pack.New(opts.Config, pack.NewSource(opts.Seed))
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	hooks := observability.Pack()
	start := time.Now()
	hooks.OnPackStart(ctx, opts.Config.Size, opts.Seed)
	logger.Info("drawing in the background", "size", opts.Config.Size, "seed", opts.Seed)

	ticks, err := Drive(ctx, f, stepper, opts.TickLimit, func(tick int, f *pack.Field, res pack.TickResult) {
		hooks.OnTick(ctx, tick, f.Len(), res.Growing)
		if opts.ProgressEvery > 0 && tick%opts.ProgressEvery == 0 {
			logger.Debug("packing", "tick", tick, "circles", f.Len(), "growing", res.Growing)
		}
		if onTick != nil {
			onTick(tick, f, res)
		}
	})
	duration := time.Since(start)
	hooks.OnPackComplete(ctx, f.Len(), ticks, duration, err)
	if err != nil {
		return nil, err
	}

	logger.Info("done", "circles", f.Len(), "ticks", ticks, "duration", duration)
	return scene.FromField(f, scene.Run{
		Config:   opts.Config,
		Seed:     opts.Seed,
		Ticks:    ticks,
		Complete: true,
	}), nil
}

// Drive ticks f until completion and returns the number of ticks run. The
// tick that reports completion is counted. A limit of zero or less means
// no limit.
func Drive(ctx context.Context, f *pack.Field, s *pack.Stepper, limit int, onTick TickFunc) (int, error) {
	for tick := 1; limit <= 0 || tick <= limit; tick++ {
		if err := ctx.Err(); err != nil {
			return tick - 1, err
		}
		res := s.Tick(f)
		if onTick != nil {
			onTick(tick, f, res)
		}
		if res.Complete {
			return tick, nil
		}
	}
	return limit, errors.Wrap(errors.ErrCodeTimeout, ErrTickLimit,
		"packing did not complete within %d ticks", limit)
}
