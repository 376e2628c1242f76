package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleGraph = `gitGraph
  commit id: "A"
  branch dev
  commit id: "B"
  checkout main
  merge dev
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.mmd")
	if err := os.WriteFile(path, []byte(sampleGraph), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertCommand(t *testing.T) {
	input := writeSample(t)
	root := testCLI().RootCommand()
	root.SetArgs([]string{"convert", input, "-f", "drawio,dot,json"})

	if err := root.Execute(); err != nil {
		t.Fatalf("convert error = %v", err)
	}

	base := strings.TrimSuffix(input, ".mmd")
	tests := []struct {
		path     string
		contains string
	}{
		{base + ".drawio", "<mxfile"},
		{base + ".dot", "digraph gitchart"},
		{base + ".json", `"branches"`},
	}
	for _, tt := range tests {
		data, err := os.ReadFile(tt.path)
		if err != nil {
			t.Fatalf("expected output %s: %v", tt.path, err)
		}
		if !strings.Contains(string(data), tt.contains) {
			t.Errorf("%s missing %q", tt.path, tt.contains)
		}
	}
}

func TestConvertCommandExplicitOutput(t *testing.T) {
	input := writeSample(t)
	out := filepath.Join(t.TempDir(), "diagram.drawio")

	root := testCLI().RootCommand()
	root.SetArgs([]string{"convert", input, "-o", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("convert error = %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("explicit output not written: %v", err)
	}
}

func TestConvertCommandMissingInput(t *testing.T) {
	root := testCLI().RootCommand()
	root.SetArgs([]string{"convert", "no-such-file.mmd"})
	if err := root.Execute(); err == nil {
		t.Error("convert with missing input should fail")
	}
}

func TestConvertCommandInvalidFormat(t *testing.T) {
	input := writeSample(t)
	root := testCLI().RootCommand()
	root.SetArgs([]string{"convert", input, "-f", "gif"})
	if err := root.Execute(); err == nil {
		t.Error("convert with invalid format should fail")
	}
}

func TestParseThenRenderCommands(t *testing.T) {
	input := writeSample(t)
	dir := t.TempDir()
	model := filepath.Join(dir, "model.json")

	root := testCLI().RootCommand()
	root.SetArgs([]string{"parse", input, "-o", model})
	if err := root.Execute(); err != nil {
		t.Fatalf("parse error = %v", err)
	}

	out := filepath.Join(dir, "diagram.drawio")
	root = testCLI().RootCommand()
	root.SetArgs([]string{"render", model, "-o", out, "-f", "drawio"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("rendered output missing: %v", err)
	}
	if !strings.Contains(string(data), "<mxfile") {
		t.Error("rendered output is not a draw.io document")
	}
}

func TestRenderCommandRejectsBadModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(`{"nodes": [{"id": ""}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	root := testCLI().RootCommand()
	root.SetArgs([]string{"render", path})
	if err := root.Execute(); err == nil {
		t.Error("render with invalid model should fail")
	}
}
