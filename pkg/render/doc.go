// Package render groups the output emitters for laid-out commit graphs.
//
// # Overview
//
// Every emitter consumes the model produced by the parser and writes one
// output format. Emitters are mechanical: they never move, recolor, reorder
// or rename anything in the model.
//
//   - draw.io XML, the canonical document format (in [drawio] subpackage)
//   - Graphviz DOT and SVG previews (in [dot] subpackage)
//
// JSON interchange of the model itself lives in the top-level io package,
// since it is a lossless serialization rather than a rendering.
//
// # Choosing a Format
//
// The draw.io document is the one format whose geometry is the model's
// geometry; open it in any mxGraph-compatible editor and every commit sits
// exactly where the layout pass put it. DOT and SVG are conveniences for
// quick terminal-adjacent previews and for piping into external Graphviz
// tooling.
//
// [drawio]: github.com/gitchart/gitchart/pkg/render/drawio
// [dot]: github.com/gitchart/gitchart/pkg/render/dot
package render
