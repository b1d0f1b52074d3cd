package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/performance-portal/goldenpath/pkg/logging"
	"github.com/performance-portal/goldenpath/pkg/version"
)

// New returns the root command for the goldenpath tool.
func New() *cli.Command {
	return &cli.Command{
		Name:    "goldenpathctl",
		Usage:   "Derive a coherent Kubernetes manifest bundle from declarative intent",
		Version: version.String(),
		Description: `goldenpathctl turns a small set of declarative inputs (app name, language,
expected peak RPS, latency target, tier, image) into a numerically consistent
set of Kubernetes manifests: Deployment, Service, HorizontalPodAutoscaler v2,
ServiceMonitor, and a Grafana dashboard.

All five documents share one identity and one set of metric names, and the
autoscaling thresholds are derived to trigger before the sized replicas
saturate.`,
		Commands: []*cli.Command{
			generateCmd(),
			languagesCmd(),
			serveCmd(),
		},
	}
}

// Run executes the root command and returns a process exit code.
func Run(ctx context.Context, args []string) int {
	logging.SetDefaultStructuredLogger("goldenpathctl", version.Version)

	if err := New().Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
