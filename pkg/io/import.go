package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gitchart/gitchart/pkg/gitgraph"
)

// ReadJSON decodes a JSON model from r.
//
// The input must be a JSON object in the format written by [WriteJSON]. After
// decoding, the structure is validated:
//   - node ids must be unique
//   - every edge endpoint must reference a node id
//
// Errors are wrapped with context describing which node or edge caused the
// problem. The returned model is independent of r and can be used freely
// after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*gitgraph.Model, error) {
	var m gitgraph.Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[string]bool, len(m.Nodes))
	for _, n := range m.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node without id")
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("node %s: duplicate id", n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range m.Edges {
		if !seen[e.Source] {
			return nil, fmt.Errorf("edge %s->%s: unknown source node", e.Source, e.Target)
		}
		if !seen[e.Target] {
			return nil, fmt.Errorf("edge %s->%s: unknown target node", e.Source, e.Target)
		}
	}

	// Normalize so downstream renderers can marshal without null arrays.
	if m.Branches == nil {
		m.Branches = []gitgraph.Branch{}
	}
	if m.Nodes == nil {
		m.Nodes = []gitgraph.CommitNode{}
	}
	if m.Edges == nil {
		m.Edges = []gitgraph.Edge{}
	}

	return &m, nil
}

// ImportJSON reads a JSON file at path and returns the decoded model.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*gitgraph.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
