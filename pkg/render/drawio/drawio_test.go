package drawio

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/gitchart/gitchart/pkg/gitgraph"
)

const exampleSrc = `gitGraph
commit id:"A"
branch dev
checkout dev
commit id:"B"
checkout main
commit id:"C"
merge dev
`

func TestRenderDocumentShape(t *testing.T) {
	m := gitgraph.Parse(exampleSrc)

	data, err := Render(m)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var doc mxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("xml.Unmarshal() error: %v", err)
	}

	if doc.Host != "gitchart" {
		t.Errorf("host = %q, want %q", doc.Host, "gitchart")
	}
	if doc.Diagram.ID == "" {
		t.Error("diagram id is empty")
	}
	if doc.Diagram.Name != DefaultDiagramName {
		t.Errorf("diagram name = %q, want %q", doc.Diagram.Name, DefaultDiagramName)
	}

	cells := doc.Diagram.Model.Cells
	// 2 structural + 2 lane labels + 4 edges + 4 nodes.
	if len(cells) != 12 {
		t.Fatalf("cell count = %d, want 12", len(cells))
	}
	if cells[0].ID != "0" || cells[1].ID != "1" || cells[1].Parent != "0" {
		t.Errorf("structural cells = %+v, %+v", cells[0], cells[1])
	}

	byID := make(map[string]mxCell)
	for _, c := range cells {
		if _, dup := byID[c.ID]; dup {
			t.Errorf("duplicate cell id %q", c.ID)
		}
		byID[c.ID] = c
	}

	// Commit cells keep the node id and carry the node's coordinates.
	a, ok := byID["A"]
	if !ok {
		t.Fatal("no cell with id A")
	}
	if a.Vertex != "1" || a.Value != "A" {
		t.Errorf("cell A = %+v, want labeled vertex", a)
	}
	if a.Geometry == nil || *a.Geometry.X != 0 || *a.Geometry.Y != 0 {
		t.Errorf("cell A geometry = %+v, want x=0 y=0", a.Geometry)
	}
	if *a.Geometry.Width != DefaultNodeSize || *a.Geometry.Height != DefaultNodeSize {
		t.Errorf("cell A size = %vx%v, want %v square", *a.Geometry.Width, *a.Geometry.Height, DefaultNodeSize)
	}

	b := byID["B"]
	if b.Geometry == nil || *b.Geometry.X != 120 || *b.Geometry.Y != 80 {
		t.Errorf("cell B geometry = %+v, want x=120 y=80", b.Geometry)
	}
	if !strings.Contains(b.Style, "#ff7f0e") {
		t.Errorf("cell B style = %q, want dev branch color", b.Style)
	}

	merge := byID["merge-8"]
	if merge.ID == "" {
		t.Fatal("no cell with id merge-8")
	}
	if !strings.Contains(merge.Style, "fillColor=#ffffff") {
		t.Errorf("merge style = %q, want hollow fill", merge.Style)
	}
}

func TestRenderEdges(t *testing.T) {
	m := gitgraph.Parse(exampleSrc)

	data, err := Render(m)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var doc mxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("xml.Unmarshal() error: %v", err)
	}

	var edges []mxCell
	for _, c := range doc.Diagram.Model.Cells {
		if c.Edge == "1" {
			edges = append(edges, c)
		}
	}
	if len(edges) != 4 {
		t.Fatalf("edge cell count = %d, want 4", len(edges))
	}

	// Model order is preserved.
	wantPairs := []struct{ source, target string }{
		{"A", "B"},
		{"A", "C"},
		{"C", "merge-8"},
		{"B", "merge-8"},
	}
	for i, want := range wantPairs {
		if edges[i].Source != want.source || edges[i].Target != want.target {
			t.Errorf("edge %d = %s->%s, want %s->%s",
				i, edges[i].Source, edges[i].Target, want.source, want.target)
		}
	}

	// Only the merged branch's tip edge is dashed.
	for i, e := range edges {
		dashed := strings.Contains(e.Style, "dashed=1")
		if (i == 3) != dashed {
			t.Errorf("edge %d dashed = %v, want %v (style %q)", i, dashed, i == 3, e.Style)
		}
	}
}

func TestRenderLaneLabels(t *testing.T) {
	m := gitgraph.Parse(exampleSrc)

	data, err := Render(m)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var doc mxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("xml.Unmarshal() error: %v", err)
	}

	labels := make(map[string]mxCell)
	for _, c := range doc.Diagram.Model.Cells {
		if strings.HasPrefix(c.Style, "text;") {
			labels[c.Value] = c
		}
	}
	if len(labels) != 2 {
		t.Fatalf("lane label count = %d, want 2", len(labels))
	}

	main, ok := labels["main"]
	if !ok {
		t.Fatal("no lane label for main")
	}
	if *main.Geometry.Y != 0 {
		t.Errorf("main label y = %v, want 0 (pinned to the lane's first node)", *main.Geometry.Y)
	}
	dev := labels["dev"]
	if *dev.Geometry.Y != 80 {
		t.Errorf("dev label y = %v, want 80", *dev.Geometry.Y)
	}
}

func TestRenderDeterministic(t *testing.T) {
	m := gitgraph.Parse(exampleSrc)

	first, err := Render(m)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	second, err := Render(m)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Render produced different bytes for the same model")
	}
}

func TestRenderOptions(t *testing.T) {
	m := gitgraph.Parse("commit id:\"A\"\n")

	data, err := Render(m, WithNodeSize(24), WithName("feature work"))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var doc mxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("xml.Unmarshal() error: %v", err)
	}

	if doc.Diagram.Name != "feature work" {
		t.Errorf("diagram name = %q, want %q", doc.Diagram.Name, "feature work")
	}
	for _, c := range doc.Diagram.Model.Cells {
		if c.ID == "A" && *c.Geometry.Width != 24 {
			t.Errorf("node width = %v, want 24", *c.Geometry.Width)
		}
	}
}

func TestRenderEmptyModel(t *testing.T) {
	data, err := Render(gitgraph.Parse(""))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var doc mxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("xml.Unmarshal() error: %v", err)
	}

	// Structural cells plus the main lane label.
	if len(doc.Diagram.Model.Cells) != 3 {
		t.Errorf("cell count = %d, want 3", len(doc.Diagram.Model.Cells))
	}
}

func TestRenderNilModel(t *testing.T) {
	if _, err := Render(nil); err == nil {
		t.Error("Render(nil) error = nil, want error")
	}
}

func TestRenderEscapesLabels(t *testing.T) {
	m := gitgraph.Parse("commit id:\"x\" tag:\"a <b> & c\"\n")

	data, err := Render(m)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var doc mxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("xml.Unmarshal() error: %v (output %s)", err, data)
	}
}
