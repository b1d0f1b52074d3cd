package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/performance-portal/goldenpath/pkg/bundle"
	"github.com/performance-portal/goldenpath/pkg/identity"
	"github.com/performance-portal/goldenpath/pkg/serializer"
)

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "generate",
		Aliases:               []string{"gen"},
		EnableShellCompletion: true,
		Usage:                 "Generate a manifest bundle from declarative intent",
		Description: `Generates the full manifest bundle for one application:

  - <name>-combined.yaml: Deployment, Service, HPA v2 and ServiceMonitor as
    one multi-document file
  - <name>-dashboard.json: Grafana dashboard

# Examples

Production Java service expecting 100 RPS at a 200ms P99 target:
  goldenpathctl generate --name payments --lang java --rps 100 --latency 200 \
    --tier prod --image registry.local/payments

Write the combined manifests to stdout instead of files:
  goldenpathctl generate --name payments --lang go --image registry.local/payments --output -`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Required: true,
				Usage:    "Application name (DNS-1123 label)",
			},
			&cli.StringFlag{
				Name:  "namespace",
				Value: identity.DefaultNamespace,
				Usage: "Target namespace",
			},
			&cli.StringFlag{
				Name:  "lang",
				Value: "java",
				Usage: "Application language (java, go, python, dotnet)",
			},
			&cli.Float64Flag{
				Name:  "rps",
				Value: 100,
				Usage: "Expected peak requests per second",
			},
			&cli.Float64Flag{
				Name:  "latency",
				Value: 200,
				Usage: "Target P99 latency in milliseconds",
			},
			&cli.StringFlag{
				Name:  "tier",
				Value: "prod",
				Usage: "Deployment tier (prod or dev)",
			},
			&cli.StringFlag{
				Name:  "image",
				Value: "my-docker-reg/app",
				Usage: "Container image reference",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "output",
				Usage:   "Output directory, or '-' for stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			req := &bundle.Request{
				Name:      cmd.String("name"),
				Namespace: cmd.String("namespace"),
				Language:  cmd.String("lang"),
				Image:     cmd.String("image"),
				TargetRPS: cmd.Float64("rps"),
				LatencyMs: cmd.Float64("latency"),
				Tier:      cmd.String("tier"),
			}

			b, err := bundle.Assemble(req)
			if err != nil {
				return fmt.Errorf("error assembling bundle: %w", err)
			}

			output := cmd.String("output")
			if output == "-" {
				out, err := serializer.RenderManifests(b)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(out)
				return err
			}

			if err := serializer.WriteBundle(ctx, b, output); err != nil {
				return fmt.Errorf("error writing bundle: %w", err)
			}

			slog.Info("bundle generated",
				"app", b.Identity.Name,
				"namespace", b.Identity.Namespace,
				"dir", output,
				"minReplicas", b.Derived.Policy.MinReplicas,
				"maxReplicas", b.Derived.Policy.MaxReplicas,
			)
			return nil
		},
	}
}
