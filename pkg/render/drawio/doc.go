// Package drawio emits laid-out commit graph models as draw.io XML documents.
//
// # Overview
//
// This package produces the canonical output format: an mxfile document that
// draw.io and compatible editors open directly. The emitter is mechanical by
// contract; it consumes the model verbatim and never moves, recolors or
// renames anything:
//
//   - one vertex cell per commit node, cell id equal to the node id
//   - one edge cell per edge, in model order
//   - one text cell per branch, labeling its lane
//
// # Usage
//
// Render a model to bytes, optionally overriding the node size:
//
//	xml, err := drawio.Render(m, drawio.WithNodeSize(24))
//
// # Determinism
//
// The same model always produces the same bytes. Cell ids for edges, lane
// labels and the diagram element are UUIDv5 values derived from model
// content, and no timestamp or random attribute is ever written.
package drawio
