package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"

	"github.com/gitchart/gitchart/pkg/pipeline"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testServer(t *testing.T, input string) *Server {
	t.Helper()
	s, err := New(Options{
		Addr:   "localhost:0",
		Input:  input,
		Logger: testLogger(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	// SVG rendering spins up the graphviz engine; unit tests cover the
	// remaining formats.
	s.opts.Pipeline.Formats = []string{pipeline.FormatDrawio, pipeline.FormatJSON}
	return s
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.mmd")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleSource = `gitGraph
  commit id: "A"
  branch dev
  commit id: "B"
  checkout main
  merge dev
`

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"valid", Options{Addr: "localhost:8080", Input: "graph.mmd"}, false},
		{"missing port", Options{Addr: "localhost", Input: "graph.mmd"}, true},
		{"bad port", Options{Addr: "localhost:http", Input: "graph.mmd"}, true},
		{"empty input", Options{Addr: "localhost:8080"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	s, err := New(Options{Addr: "localhost:8080", Input: "graph.mmd"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.opts.Debounce != DefaultDebounce {
		t.Errorf("Debounce = %v, want %v", s.opts.Debounce, DefaultDebounce)
	}
	if s.opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
	want := []string{pipeline.FormatDrawio, pipeline.FormatSVG, pipeline.FormatJSON}
	if len(s.opts.Pipeline.Formats) != len(want) {
		t.Fatalf("Formats = %v, want %v", s.opts.Pipeline.Formats, want)
	}
	for i, f := range want {
		if s.opts.Pipeline.Formats[i] != f {
			t.Errorf("Formats[%d] = %q, want %q", i, s.opts.Pipeline.Formats[i], f)
		}
	}
}

func TestArtifactsBeforeFirstConversion(t *testing.T) {
	s := testServer(t, "does-not-matter.mmd")
	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	for _, path := range []string{"/diagram.xml", "/preview.svg", "/model.json"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("GET %s = %d, want %d", path, resp.StatusCode, http.StatusServiceUnavailable)
		}
	}
}

func TestRefreshServesArtifacts(t *testing.T) {
	input := writeInput(t, sampleSource)
	s := testServer(t, input)
	s.refresh(context.Background())

	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/diagram.xml", "application/xml; charset=utf-8", "<mxfile"},
		{"/model.json", "application/json", `"branches"`},
	}
	for _, tt := range tests {
		resp, err := http.Get(srv.URL + tt.path)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s = %d, want 200", tt.path, resp.StatusCode)
		}
		if got := resp.Header.Get("Content-Type"); got != tt.contentType {
			t.Errorf("GET %s Content-Type = %q, want %q", tt.path, got, tt.contentType)
		}
		if !strings.Contains(string(body), tt.contains) {
			t.Errorf("GET %s body missing %q", tt.path, tt.contains)
		}
	}
}

func TestRefreshKeepsLastGoodOnFailure(t *testing.T) {
	input := writeInput(t, sampleSource)
	s := testServer(t, input)
	ctx := context.Background()

	s.refresh(ctx)
	good := s.snapshot()
	if good.Revision != 1 {
		t.Fatalf("Revision = %d, want 1", good.Revision)
	}
	if good.LastError != "" {
		t.Fatalf("LastError = %q, want empty", good.LastError)
	}

	if err := os.Remove(input); err != nil {
		t.Fatal(err)
	}
	s.refresh(ctx)

	st := s.snapshot()
	if st.LastError == "" {
		t.Error("LastError empty after failed refresh")
	}
	if st.Revision != 1 {
		t.Errorf("Revision = %d, want 1 (failed refresh must not advance)", st.Revision)
	}
	if !bytes.Equal(st.Artifacts[pipeline.FormatDrawio], good.Artifacts[pipeline.FormatDrawio]) {
		t.Error("artifacts changed after failed refresh")
	}

	srv := httptest.NewServer(s.routes())
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/diagram.xml")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /diagram.xml after failure = %d, want 200", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	input := writeInput(t, sampleSource)
	s := testServer(t, input)
	s.refresh(context.Background())

	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var health struct {
		Status   string `json:"status"`
		Revision int    `json:"revision"`
		Healthy  bool   `json:"healthy"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "ok" || health.Revision != 1 || !health.Healthy {
		t.Errorf("healthz = %+v, want ok/1/healthy", health)
	}
}

func TestIndexPage(t *testing.T) {
	s := testServer(t, "graph.mmd")
	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "gitchart") {
		t.Error("index page missing title")
	}
}

func TestWebsocketInitialState(t *testing.T) {
	input := writeInput(t, sampleSource)
	s := testServer(t, input)
	s.refresh(context.Background())

	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first, second updateMessage
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read first message: %v", err)
	}
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("read second message: %v", err)
	}
	if first.Type != messageModel {
		t.Errorf("first message type = %q, want %q", first.Type, messageModel)
	}
	if second.Type != messageStatus {
		t.Errorf("second message type = %q, want %q", second.Type, messageStatus)
	}

	var status statusPayload
	if err := json.Unmarshal(second.Data, &status); err != nil {
		t.Fatal(err)
	}
	if status.Nodes != 3 || status.Branches != 2 {
		t.Errorf("status = %+v, want 3 nodes / 2 branches", status)
	}
}

func TestRelevant(t *testing.T) {
	s := testServer(t, filepath.Join("some", "dir", "graph.mmd"))

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to watched file", fsnotify.Event{Name: "some/dir/graph.mmd", Op: fsnotify.Write}, true},
		{"rename onto watched file", fsnotify.Event{Name: "some/dir/graph.mmd", Op: fsnotify.Create}, true},
		{"other file", fsnotify.Event{Name: "some/dir/other.mmd", Op: fsnotify.Write}, false},
		{"editor temp file", fsnotify.Event{Name: "some/dir/.graph.mmd.swp", Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: "some/dir/graph.mmd", Op: fsnotify.Chmod}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.relevant(tt.event, "graph.mmd"); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}
