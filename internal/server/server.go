// Package server implements the live preview server behind "gitchart serve".
//
// The server watches one directive file, reruns the conversion pipeline on
// every change, and pushes the refreshed model to connected browsers over a
// websocket. HTTP endpoints expose the latest artifacts directly, so the
// same server doubles as a local artifact endpoint for editor integrations:
//
//	GET /             preview page
//	GET /diagram.xml  latest draw.io document
//	GET /preview.svg  latest SVG preview
//	GET /model.json   latest model
//	GET /healthz      liveness probe
//	GET /ws           websocket push channel
//
// A conversion that fails (unreadable file, render error) never tears down
// the state: clients keep the last good artifacts and receive a status
// message describing the problem.
package server

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/gitchart/gitchart/pkg/errors"
	"github.com/gitchart/gitchart/pkg/observability"
	"github.com/gitchart/gitchart/pkg/pipeline"
)

// DefaultDebounce is how long file events are coalesced before reconverting.
const DefaultDebounce = 100 * time.Millisecond

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Options configures a preview server.
type Options struct {
	Addr     string           // listen address, host:port
	Input    string           // directive file to watch
	Pipeline pipeline.Options // conversion settings; formats are fixed by the server
	Debounce time.Duration    // event coalescing window; DefaultDebounce when zero
	Logger   *log.Logger
}

// state is the latest conversion outcome. Artifacts survive failed
// refreshes; LastError is empty while the state is healthy.
type state struct {
	Artifacts map[string][]byte
	Stats     pipeline.Stats
	Revision  int
	LastError string
}

// Server converts one watched file and serves the results.
type Server struct {
	opts   Options
	logger *log.Logger
	runner *pipeline.Runner

	mu      sync.RWMutex
	current state

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]bool
	broadcast chan updateMessage
}

// New validates opts and assembles a server. The input file does not have to
// exist yet; a missing file simply shows up as an unhealthy status until it
// appears.
func New(opts Options) (*Server, error) {
	if err := errors.ValidateListenAddr(opts.Addr); err != nil {
		return nil, err
	}
	if opts.Input == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no input file to watch")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	opts.Pipeline.Formats = []string{pipeline.FormatDrawio, pipeline.FormatSVG, pipeline.FormatJSON}

	return &Server{
		opts:      opts,
		logger:    opts.Logger,
		runner:    pipeline.NewRunner(opts.Logger),
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan updateMessage, 256),
	}, nil
}

// Run converts once, starts the watcher and broadcaster, and serves until
// ctx is cancelled. It returns nil on a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	s.refresh(ctx)

	if err := s.watch(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to watch %s", s.opts.Input)
	}
	go s.pump(ctx)

	srv := &http.Server{
		Addr:    s.opts.Addr,
		Handler: s.routes(),
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", s.opts.Addr, "input", s.opts.Input)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeClients()
	return err
}

// refresh reruns the pipeline and swaps in the new artifacts. Failures keep
// the previous artifacts and surface through the status channel instead.
func (s *Server) refresh(ctx context.Context) {
	err := s.convert(ctx)
	observability.Server().OnRefresh(ctx, s.snapshot().Revision, err)
}

func (s *Server) convert(ctx context.Context) error {
	src, err := os.ReadFile(s.opts.Input)
	if err != nil {
		s.fail(err.Error())
		return err
	}

	result, err := s.runner.Convert(ctx, string(src), s.opts.Pipeline)
	if err != nil {
		s.fail(errors.UserMessage(err))
		return err
	}

	s.mu.Lock()
	s.current.Artifacts = result.Artifacts
	s.current.Stats = result.Stats
	s.current.Revision++
	s.current.LastError = ""
	rev := s.current.Revision
	s.mu.Unlock()

	s.logger.Info("converted",
		"revision", rev,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount)

	s.broadcastUpdate(messageModel, result.Artifacts[pipeline.FormatJSON])
	s.broadcastStatus()
	return nil
}

func (s *Server) fail(msg string) {
	s.mu.Lock()
	s.current.LastError = msg
	s.mu.Unlock()

	s.logger.Warn("conversion failed, keeping last good output", "err", msg)
	s.broadcastStatus()
}

// snapshot returns the current state without handing out interior slices to
// mutation; artifact values are only ever replaced wholesale.
func (s *Server) snapshot() state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
