package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/performance-portal/goldenpath/pkg/bundle"
)

func testBundle(t *testing.T) *bundle.Bundle {
	t.Helper()
	b, err := bundle.Assemble(&bundle.Request{
		Name:      "payments",
		Namespace: "perf-test",
		Language:  "go",
		Image:     "registry.example.com/payments:1.2.3",
		TargetRPS: 100,
		LatencyMs: 200,
		Tier:      "prod",
	})
	require.NoError(t, err)
	return b
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	require.NoError(t, w.Serialize(map[string]string{"lang": "go"}))
	assert.JSONEq(t, `{"lang":"go"}`, buf.String())
}

func TestWriter_YAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	require.NoError(t, w.Serialize(map[string]string{"lang": "go"}))
	assert.Equal(t, "lang: go\n", buf.String())
}

func TestWriter_UnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("toml"), &buf)

	require.NoError(t, w.Serialize(map[string]string{"lang": "go"}))
	assert.JSONEq(t, `{"lang":"go"}`, buf.String())
}

func TestNewFileWriterOrStdout_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	w := NewFileWriterOrStdout(FormatYAML, path)

	require.NoError(t, w.Serialize(map[string]string{"lang": "go"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "lang: go\n", string(data))
}

func TestRenderManifests_FourDocumentsInApplyOrder(t *testing.T) {
	out, err := RenderManifests(testBundle(t))
	require.NoError(t, err)

	docs := strings.Split(string(out), "---\n")
	require.Len(t, docs, 4)

	assert.Contains(t, docs[0], "kind: Deployment")
	assert.Contains(t, docs[1], "kind: Service")
	assert.Contains(t, docs[2], "kind: HorizontalPodAutoscaler")
	assert.Contains(t, docs[3], "kind: ServiceMonitor")

	for i, doc := range docs {
		assert.Contains(t, doc, "name: payments", "document %d", i)
		assert.Contains(t, doc, "namespace: perf-test", "document %d", i)
	}
}

func TestRenderManifests_Deterministic(t *testing.T) {
	b := testBundle(t)

	first, err := RenderManifests(b)
	require.NoError(t, err)
	second, err := RenderManifests(b)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderDashboard_ProvisioningEnvelope(t *testing.T) {
	out, err := RenderDashboard(testBundle(t))
	require.NoError(t, err)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &envelope))
	require.Contains(t, envelope, "dashboard")

	var d struct {
		UID    string `json:"uid"`
		Title  string `json:"title"`
		Panels []any  `json:"panels"`
	}
	require.NoError(t, json.Unmarshal(envelope["dashboard"], &d))
	assert.NotEmpty(t, d.UID)
	assert.Equal(t, "App: payments - Performance", d.Title)
	assert.Len(t, d.Panels, 3)
}

func TestWriteBundle(t *testing.T) {
	dir := t.TempDir()
	b := testBundle(t)

	require.NoError(t, WriteBundle(context.Background(), b, dir))

	manifests, err := os.ReadFile(filepath.Join(dir, "payments-combined.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifests), "kind: HorizontalPodAutoscaler")

	dashboard, err := os.ReadFile(filepath.Join(dir, "payments-dashboard.json"))
	require.NoError(t, err)
	assert.True(t, json.Valid(dashboard))
}

func TestWriteBundle_CreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, WriteBundle(context.Background(), testBundle(t), dir))

	_, err := os.Stat(filepath.Join(dir, "payments-combined.yaml"))
	assert.NoError(t, err)
}
