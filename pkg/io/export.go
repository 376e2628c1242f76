package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gitchart/gitchart/pkg/gitgraph"
)

// WriteJSON encodes a model as JSON and writes it to w.
// The output preserves branch, node and edge order, so it carries the same
// z-order the emitters use. This format can be re-imported with [ReadJSON]
// for round-trip processing.
func WriteJSON(m *gitgraph.Model, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a model to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(m *gitgraph.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(m, f)
}
