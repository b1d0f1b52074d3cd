package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	k8syaml "sigs.k8s.io/yaml"

	"github.com/performance-portal/goldenpath/pkg/bundle"
)

// documentSeparator joins the documents of a combined manifest file.
const documentSeparator = "---\n"

// RenderManifests renders the bundle's Kubernetes objects as one
// multi-document YAML stream, in apply order. The dashboard is not included;
// it is not a Kubernetes object.
func RenderManifests(b *bundle.Bundle) ([]byte, error) {
	docs := []struct {
		name string
		obj  any
	}{
		{"deployment", b.Deployment},
		{"service", b.Service},
		{"hpa", b.Autoscaler},
		{"servicemonitor", b.ServiceMonitor},
	}

	var buf bytes.Buffer
	for i, d := range docs {
		// sigs.k8s.io/yaml honors the objects' json tags, which is what
		// typed Kubernetes structs require.
		out, err := k8syaml.Marshal(d.obj)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", d.name, err)
		}
		if i > 0 {
			buf.WriteString(documentSeparator)
		}
		buf.Write(out)
	}
	return buf.Bytes(), nil
}

// RenderDashboard renders the bundle's dashboard as indented JSON in the
// Grafana provisioning envelope.
func RenderDashboard(b *bundle.Bundle) ([]byte, error) {
	envelope := map[string]any{"dashboard": b.Dashboard}
	out, err := json.MarshalIndent(envelope, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to render dashboard: %w", err)
	}
	return append(out, '\n'), nil
}

// WriteBundle writes the bundle's files into dir:
//
//	<name>-combined.yaml   the Kubernetes manifests, one multi-document file
//	<name>-dashboard.json  the Grafana dashboard
//
// The two files are rendered and written concurrently.
func WriteBundle(ctx context.Context, b *bundle.Bundle, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		out, err := RenderManifests(b)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, b.Identity.Name+"-combined.yaml")
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("failed to write manifests: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		out, err := RenderDashboard(b)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, b.Identity.Name+"-dashboard.json")
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("failed to write dashboard: %w", err)
		}
		return nil
	})

	return g.Wait()
}
