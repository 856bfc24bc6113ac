package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/observability"
	"github.com/matzehuels/circlepack/pkg/render"
	"github.com/matzehuels/circlepack/pkg/scene"
)

// Render produces formats from s concurrently, one goroutine per format.
// The first failure cancels the rest.
func Render(ctx context.Context, s *scene.Scene, opts Options, formats []string) (map[string][]byte, error) {
	opts.SetDefaults()
	renderOpts, err := opts.RenderOptions()
	if err != nil {
		return nil, err
	}

	hooks := observability.Pack()
	start := time.Now()
	hooks.OnRenderStart(ctx, formats)

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := RenderFormat(s, format, renderOpts...)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFormat produces a single format from s.
func RenderFormat(s *scene.Scene, format string, opts ...render.Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return render.RenderSVG(s, opts...)
	case FormatPNG:
		return render.RenderPNG(s, opts...)
	case FormatJSON:
		return render.RenderJSON(s)
	case FormatDOT:
		return []byte(render.ToDOT(s)), nil
	case FormatGraph:
		return render.RenderContactSVG(render.ToDOT(s))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}
