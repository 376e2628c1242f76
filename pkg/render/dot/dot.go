package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/gitchart/gitchart/pkg/gitgraph"
)

// Options configures DOT generation.
type Options struct {
	// Labels draws commit labels inside the nodes. When false, nodes render
	// as unlabeled dots sized for dense graphs.
	Labels bool
}

// ToDOT converts a model to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(m *gitgraph.Model, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph gitchart {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Labels {
		buf.WriteString("  node [shape=circle, style=filled, fontsize=12, fontcolor=white, fixedsize=true, width=0.6];\n")
	} else {
		buf.WriteString("  node [shape=circle, style=filled, label=\"\", fixedsize=true, width=0.25];\n")
	}
	buf.WriteString("  edge [penwidth=2, arrowsize=0.6];\n")
	buf.WriteString("\n")

	for _, n := range m.Nodes {
		attrs := fmtAttrs(n, opts.Labels)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range m.Edges {
		attrs := []string{fmt.Sprintf("color=%q", e.Color)}
		if e.MergeLine {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n gitgraph.CommitNode, labels bool) []string {
	var attrs []string
	if labels {
		attrs = append(attrs, fmt.Sprintf("label=%q", n.Label))
	}
	if n.Merge {
		attrs = append(attrs, "shape=doublecircle", "fillcolor=white", fmt.Sprintf("color=%q", n.Color))
		if labels {
			attrs = append(attrs, "fontcolor=black")
		}
	} else {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Color))
	}
	// Model y grows downward, DOT y grows upward. Negating keeps lanes in
	// the same visual order under "neato -n".
	y := -n.Y
	if y == 0 {
		y = 0 // avoid "-0" for lane zero
	}
	attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", n.X, y))
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the document scales to its
// container instead of a fixed point size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
