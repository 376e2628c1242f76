package drawio

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gitchart/gitchart/pkg/gitgraph"
)

// DefaultNodeSize is the rendered diameter of a commit node.
const DefaultNodeSize = 40.0

// DefaultDiagramName is the name of the diagram tab inside the document.
const DefaultDiagramName = "Git Graph"

// Cell styles. Commit nodes are filled circles in their branch color; merge
// nodes are hollow circles with a branch-colored ring so the join reads at a
// glance. Merge lines are dashed.
const (
	commitStyle    = "ellipse;html=1;whiteSpace=wrap;aspect=fixed;fontSize=10;fontColor=#ffffff;strokeColor=#ffffff;fillColor=%s;"
	mergeStyle     = "ellipse;html=1;whiteSpace=wrap;aspect=fixed;fontSize=10;fontColor=#333333;strokeWidth=3;strokeColor=%s;fillColor=#ffffff;"
	edgeStyle      = "edgeStyle=orthogonalEdgeStyle;rounded=1;html=1;endArrow=none;strokeWidth=2;strokeColor=%s;"
	mergeEdgeStyle = "edgeStyle=orthogonalEdgeStyle;rounded=1;html=1;endArrow=none;strokeWidth=2;dashed=1;strokeColor=%s;"
	laneStyle      = "text;html=1;align=right;verticalAlign=middle;fontStyle=1;fontSize=12;fontColor=%s;"
)

// idNamespace seeds every derived UUIDv5, so ids are stable across runs and
// machines.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/gitchart/gitchart"))

// Option configures XML rendering via [Render].
type Option func(*renderer)

type renderer struct {
	nodeSize float64
	name     string
}

// WithNodeSize overrides the commit node diameter. Non-positive values are
// ignored.
func WithNodeSize(size float64) Option {
	return func(r *renderer) {
		if size > 0 {
			r.nodeSize = size
		}
	}
}

// WithName overrides the diagram tab name. Empty values are ignored.
func WithName(name string) Option {
	return func(r *renderer) {
		if name != "" {
			r.name = name
		}
	}
}

type mxFile struct {
	XMLName xml.Name  `xml:"mxfile"`
	Host    string    `xml:"host,attr"`
	Diagram mxDiagram `xml:"diagram"`
}

type mxDiagram struct {
	ID    string       `xml:"id,attr"`
	Name  string       `xml:"name,attr"`
	Model mxGraphModel `xml:"mxGraphModel"`
}

type mxGraphModel struct {
	Grid  int      `xml:"grid,attr"`
	Cells []mxCell `xml:"root>mxCell"`
}

type mxCell struct {
	ID       string      `xml:"id,attr"`
	Value    string      `xml:"value,attr,omitempty"`
	Style    string      `xml:"style,attr,omitempty"`
	Parent   string      `xml:"parent,attr,omitempty"`
	Source   string      `xml:"source,attr,omitempty"`
	Target   string      `xml:"target,attr,omitempty"`
	Vertex   string      `xml:"vertex,attr,omitempty"`
	Edge     string      `xml:"edge,attr,omitempty"`
	Geometry *mxGeometry `xml:"mxGeometry,omitempty"`
}

// mxGeometry uses pointer fields so vertex cells can carry explicit zeros
// while edge cells omit coordinates entirely.
type mxGeometry struct {
	X        *float64 `xml:"x,attr,omitempty"`
	Y        *float64 `xml:"y,attr,omitempty"`
	Width    *float64 `xml:"width,attr,omitempty"`
	Height   *float64 `xml:"height,attr,omitempty"`
	Relative string   `xml:"relative,attr,omitempty"`
	As       string   `xml:"as,attr"`
}

// Render emits the model as a draw.io mxfile document.
//
// Cell order inside the root is lane labels, then edges in model order, then
// commit nodes in model order, so nodes draw on top of the lines that meet
// them. Rendering a nil model is an error; an empty model yields a valid
// document with no content cells.
func Render(m *gitgraph.Model, opts ...Option) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("nil model")
	}

	r := renderer{nodeSize: DefaultNodeSize, name: DefaultDiagramName}
	for _, opt := range opts {
		opt(&r)
	}

	// The two structural cells every mxGraphModel starts with.
	cells := []mxCell{
		{ID: "0"},
		{ID: "1", Parent: "0"},
	}

	// Pin each lane label to the y of the lane's first node. Branches that
	// never received a commit fall back to a pitch derived from the node size.
	laneY := make(map[string]float64, len(m.Branches))
	for _, n := range m.Nodes {
		if _, ok := laneY[n.Branch]; !ok {
			laneY[n.Branch] = n.Y
		}
	}
	for _, b := range m.Branches {
		y, ok := laneY[b.Name]
		if !ok {
			y = float64(b.Lane) * r.nodeSize * 2
		}
		cells = append(cells, r.laneCell(b, y))
	}
	for i, e := range m.Edges {
		cells = append(cells, edgeCell(i, e))
	}
	for _, n := range m.Nodes {
		cells = append(cells, r.nodeCell(n))
	}

	doc := mxFile{
		Host: "gitchart",
		Diagram: mxDiagram{
			ID:    uuid.NewSHA1(idNamespace, []byte("diagram/"+digest(m))).String(),
			Name:  r.name,
			Model: mxGraphModel{Grid: 0, Cells: cells},
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func (r renderer) nodeCell(n gitgraph.CommitNode) mxCell {
	style := commitStyle
	if n.Merge {
		style = mergeStyle
	}
	return mxCell{
		ID:     n.ID,
		Value:  n.Label,
		Style:  fmt.Sprintf(style, n.Color),
		Parent: "1",
		Vertex: "1",
		Geometry: &mxGeometry{
			X:      num(n.X),
			Y:      num(n.Y),
			Width:  num(r.nodeSize),
			Height: num(r.nodeSize),
			As:     "geometry",
		},
	}
}

func edgeCell(i int, e gitgraph.Edge) mxCell {
	style := edgeStyle
	if e.MergeLine {
		style = mergeEdgeStyle
	}
	key := fmt.Sprintf("edge/%d/%s/%s", i, e.Source, e.Target)
	return mxCell{
		ID:       uuid.NewSHA1(idNamespace, []byte(key)).String(),
		Style:    fmt.Sprintf(style, e.Color),
		Parent:   "1",
		Source:   e.Source,
		Target:   e.Target,
		Edge:     "1",
		Geometry: &mxGeometry{Relative: "1", As: "geometry"},
	}
}

// laneCell places the branch name to the left of the lane's first column,
// vertically aligned with the lane's nodes.
func (r renderer) laneCell(b gitgraph.Branch, y float64) mxCell {
	width := r.nodeSize * 3
	return mxCell{
		ID:     uuid.NewSHA1(idNamespace, []byte("lane/"+b.Name)).String(),
		Value:  b.Name,
		Style:  fmt.Sprintf(laneStyle, b.Color),
		Parent: "1",
		Vertex: "1",
		Geometry: &mxGeometry{
			X:      num(-width - r.nodeSize/2),
			Y:      num(y),
			Width:  num(width),
			Height: num(r.nodeSize),
			As:     "geometry",
		},
	}
}

// digest folds the model into a stable string for UUID derivation.
func digest(m *gitgraph.Model) string {
	var b strings.Builder
	for _, br := range m.Branches {
		fmt.Fprintf(&b, "b/%s/%d;", br.Name, br.Lane)
	}
	for _, n := range m.Nodes {
		fmt.Fprintf(&b, "n/%s/%g/%g;", n.ID, n.X, n.Y)
	}
	for _, e := range m.Edges {
		fmt.Fprintf(&b, "e/%s/%s/%t;", e.Source, e.Target, e.MergeLine)
	}
	return b.String()
}

func num(v float64) *float64 { return &v }
