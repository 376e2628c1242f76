// Package pkg provides the core libraries for gitchart.
//
// # Overview
//
// Gitchart converts the commit/branch/checkout/merge subset of Mermaid's
// gitGraph syntax into editable draw.io documents. The pkg directory is
// organized by pipeline stage:
//
//  1. [gitgraph] - Directive tokenizer and the single-pass parse+layout engine
//  2. [render] - Output emitters (draw.io XML, DOT, SVG)
//  3. [io] - Model JSON serialization for split parse/render invocations
//  4. [pipeline] - Orchestration (parse → render)
//  5. [config] - TOML layout and palette configuration
//
// # Architecture
//
// The typical data flow through gitchart:
//
//	gitGraph directives
//	         ↓
//	    [gitgraph] package (tokenize + replay into a positioned model)
//	         ↓
//	    [render/drawio] / [render/dot] packages (emit documents)
//	         ↓
//	    draw.io XML / DOT / SVG / JSON output
//
// # Quick Start
//
// Convert a directive source into a draw.io document:
//
//	import (
//	    "github.com/gitchart/gitchart/pkg/gitgraph"
//	    "github.com/gitchart/gitchart/pkg/render/drawio"
//	)
//
//	// 1. Parse and lay out in one pass
//	m := gitgraph.Parse(src)
//
//	// 2. Emit the draw.io document
//	xml, _ := drawio.Render(m)
//
// # Main Packages
//
// [gitgraph] - The conversion core. One exported entry point, Parse, replays
// the directive list in source order and assigns every commit its final
// coordinates on the way through. The result is a Model of nodes, edges and
// branch lanes that every emitter consumes unchanged.
//
// [render/drawio] - mxfile/mxGraphModel XML emission with deterministic
// UUIDv5 identifiers.
//
// [render/dot] - Graphviz DOT emission and in-process SVG rendering for
// previews.
//
// [io] - Model JSON import/export with structural validation on read.
//
// [pipeline] - Ties the stages together behind Options/Runner, the surface
// the CLI and preview server call.
//
// [config] - Optional TOML file controlling spacing and the branch color
// palette.
//
// [errors] - Coded errors shared across the tool's boundaries.
//
// [observability] - Optional hooks for instrumenting conversions.
//
// [buildinfo] - ldflags-injected version metadata.
package pkg
