// Package dot renders commit graph models as Graphviz DOT and SVG.
//
// # Overview
//
// This package produces the auxiliary preview formats next to the canonical
// draw.io document. Commits appear as filled circles in their branch color,
// merges as double circles, and merge lines as dashed edges.
//
// # Usage
//
// Convert a model to DOT source, then render to SVG:
//
//	dot := dot.ToDOT(m, dot.Options{})
//	svg, err := dot.RenderSVG(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//
// Every node carries a pinned pos attribute with the model's coordinates, so
// "neato -n" reproduces the canonical layout exactly. The bundled
// [RenderSVG] uses ranked left-to-right layout instead, which reads better
// at preview sizes.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package dot
