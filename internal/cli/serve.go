package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/internal/server"
	"github.com/matzehuels/circlepack/pkg/buildinfo"
	"github.com/matzehuels/circlepack/pkg/observability"
)

const defaultServeAddr = ":8080"

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cflags  cacheFlags
		addr    string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve packing and rendering over HTTP",
		Long: `Serve packing and rendering over HTTP.

Endpoints:
  GET  /healthz   liveness and version
  GET  /metrics   pack, render and cache counters (unless --metrics=false)
  POST /pack      JSON options in, one artifact out
  POST /render    scene.json in, one artifact out (?format=png&style=sketch)
  GET  /ws/pack   WebSocket: send options, receive tick progress and the scene

Packings and artifacts share the cache with the CLI unless --no-cache is set.`,
		Example: `  circlepack serve --addr :8080
  curl -d '{"seed":7,"format":"png"}' localhost:8080/pack > packing.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, cflags, metrics)
		},
	}

	cflags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "count pipeline events and serve them at /metrics")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, cflags cacheFlags, metrics bool) error {
	runner, err := c.newRunner(ctx, cflags)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var opts []server.Option
	if metrics {
		counters := observability.NewCounters()
		counters.Register()
		defer observability.Reset()
		opts = append(opts, server.WithCounters(counters))
	}

	printKeyValue("address", addr)
	printKeyValue("cache", fmt.Sprintf("%T", runner.Cache))
	printKeyValue("version", buildinfo.Get().Version)
	return server.New(runner, loggerFromContext(ctx), opts...).ListenAndServe(ctx, addr)
}
