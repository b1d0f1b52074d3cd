// Package serializer renders derivation output for consumers: single values
// as JSON or YAML, and assembled bundles as the conventional manifest file
// set (multi-document YAML plus dashboard JSON).
package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format identifies an output serialization format.
type Format string

const (
	// FormatJSON outputs indented JSON.
	FormatJSON Format = "json"

	// FormatYAML outputs YAML.
	FormatYAML Format = "yaml"
)

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	return f != FormatJSON && f != FormatYAML
}

// Writer serializes values to an output stream in a fixed format.
type Writer struct {
	format Format
	out    io.Writer

	// path is set instead of out when the destination is a file created
	// lazily at Serialize time.
	path string
}

// NewWriter creates a Writer targeting out. Unknown formats fall back to JSON.
func NewWriter(format Format, out io.Writer) *Writer {
	if format.IsUnknown() {
		format = FormatJSON
	}
	return &Writer{format: format, out: out}
}

// NewFileWriterOrStdout returns a Writer targeting the given file path, or
// stdout when path is empty or "-". File creation is deferred to Serialize.
func NewFileWriterOrStdout(format Format, path string) *Writer {
	if path == "" || path == "-" {
		return NewWriter(format, os.Stdout)
	}
	w := NewWriter(format, nil)
	w.path = path
	return w
}

// Serialize writes v to the writer's destination in its format.
func (w *Writer) Serialize(v any) error {
	out := w.out
	if out == nil {
		f, err := os.Create(w.path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		return nil
	}
}
