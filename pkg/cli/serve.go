package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/performance-portal/goldenpath/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the derivation engine as an HTTP API",
		Description: `Starts an HTTP server exposing the derivation engine:

  POST /v1/bundle  derive a bundle from a JSON intent body
  GET  /health     liveness
  GET  /ready      readiness
  GET  /metrics    Prometheus self-metrics

Listen address and rate limits come from PORT and LOG_LEVEL environment
variables with built-in defaults.`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			return api.Serve(ctx)
		},
	}
}
