// Package io provides JSON import and export for laid-out commit graph models.
//
// # Overview
//
// This package serializes the model produced by the parser to and from a
// simple JSON format. The format is designed for:
//
//   - Splitting the pipeline: parse once, render many times
//   - Integration with external tools that consume graph data
//   - Round-trip preservation: export, re-import, and render identically
//
// # JSON Format
//
// The format has three top-level arrays:
//
//	{
//	  "branches": [
//	    {"name": "main", "lane": 0, "tip": "B", "color": "#1f77b4"}
//	  ],
//	  "nodes": [
//	    {"id": "A", "label": "A", "x": 0, "y": 0, "branch": "main", "color": "#1f77b4"},
//	    {"id": "B", "label": "B", "x": 120, "y": 0, "branch": "main", "color": "#1f77b4"}
//	  ],
//	  "edges": [
//	    {"source": "A", "target": "B", "color": "#1f77b4"}
//	  ]
//	}
//
// Node ids must be unique and every edge endpoint must reference a node id.
// Array order is meaningful: it carries the z-order the emitters preserve.
//
// # Import
//
// Use [ImportJSON] to read a model from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	m, err := io.ImportJSON("model.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate structural invariants (unique node ids, resolvable
// edge endpoints). Errors are wrapped with context about which node or edge
// caused the problem.
//
// # Export
//
// Use [ExportJSON] to write a model to a file, or [WriteJSON] to write to any
// io.Writer:
//
//	err := io.ExportJSON(m, "model.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The export is byte-for-byte deterministic for a given model, so identical
// inputs produce identical files.
package io
