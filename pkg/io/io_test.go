package io

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/gitchart/gitchart/pkg/gitgraph"
)

func TestRoundTrip(t *testing.T) {
	m := gitgraph.Parse(`commit id:"A"
branch dev
commit id:"B"
checkout main
merge dev
`)

	var buf bytes.Buffer
	if err := WriteJSON(m, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("round trip changed the model:\ngot  = %+v\nwant = %+v", got, m)
	}
}

func TestWriteJSONDeterministic(t *testing.T) {
	m := gitgraph.Parse("commit\nbranch dev\ncommit\n")

	var a, b bytes.Buffer
	if err := WriteJSON(m, &a); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if err := WriteJSON(m, &b); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if a.String() != b.String() {
		t.Error("WriteJSON produced different bytes for the same model")
	}
}

func TestReadJSONRejectsBadModels(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed json", `{"nodes": [`},
		{"missing id", `{"nodes": [{"label": "x"}]}`},
		{"duplicate id", `{"nodes": [{"id": "a"}, {"id": "a"}]}`},
		{"unknown source", `{"nodes": [{"id": "a"}], "edges": [{"source": "ghost", "target": "a"}]}`},
		{"unknown target", `{"nodes": [{"id": "a"}], "edges": [{"source": "a", "target": "ghost"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadJSON() error = nil, want validation failure")
			}
		})
	}
}

func TestReadJSONNormalizesEmpty(t *testing.T) {
	got, err := ReadJSON(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if got.Branches == nil || got.Nodes == nil || got.Edges == nil {
		t.Errorf("ReadJSON() left nil slices: %+v", got)
	}
}
