package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/gitchart/gitchart/pkg/observability"
	"github.com/gitchart/gitchart/pkg/pipeline"
)

//go:embed index.html
var indexHTML []byte

// Message types pushed over the websocket.
const (
	messageModel  = "model"  // data holds the model JSON
	messageStatus = "status" // data holds a statusPayload
)

type updateMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type statusPayload struct {
	Revision int    `json:"revision"`
	Nodes    int    `json:"nodes"`
	Edges    int    `json:"edges"`
	Branches int    `json:"branches"`
	Error    string `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The server binds to localhost for preview; cross-origin pages on the
	// same machine are the expected clients (editor webviews).
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Get("/", s.handleIndex)
	r.Get("/diagram.xml", s.artifact(pipeline.FormatDrawio, "application/xml; charset=utf-8"))
	r.Get("/preview.svg", s.artifact(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/model.json", s.artifact(pipeline.FormatJSON, "application/json"))
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWebsocket)

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// artifact serves one rendered output. Until the first successful conversion
// there is nothing to serve and the endpoint answers 503.
func (s *Server) artifact(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := s.snapshot()
		data, ok := st.Artifacts[format]
		if !ok {
			http.Error(w, "no output converted yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"revision": st.Revision,
		"healthy":  st.LastError == "",
	})
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	n := len(s.clients)
	s.clientsMu.Unlock()
	s.logger.Debug("client connected", "clients", n)
	observability.Server().OnClientConnect(r.Context(), n)

	s.sendInitialState(conn)

	// Read loop: we never expect client messages, but reading is what
	// detects the peer going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.clientsMu.Lock()
	delete(s.clients, conn)
	n = len(s.clients)
	s.clientsMu.Unlock()
	conn.Close()
	observability.Server().OnClientDisconnect(r.Context(), n)
}

func (s *Server) sendInitialState(conn *websocket.Conn) {
	st := s.snapshot()
	if model, ok := st.Artifacts[pipeline.FormatJSON]; ok {
		conn.WriteJSON(updateMessage{Type: messageModel, Data: model})
	}
	conn.WriteJSON(s.statusMessage(st))
}

func (s *Server) statusMessage(st state) updateMessage {
	payload, _ := json.Marshal(statusPayload{
		Revision: st.Revision,
		Nodes:    st.Stats.NodeCount,
		Edges:    st.Stats.EdgeCount,
		Branches: st.Stats.BranchCount,
		Error:    st.LastError,
	})
	return updateMessage{Type: messageStatus, Data: payload}
}

func (s *Server) broadcastStatus() {
	s.broadcastMessage(s.statusMessage(s.snapshot()))
}

func (s *Server) broadcastUpdate(typ string, data []byte) {
	s.broadcastMessage(updateMessage{Type: typ, Data: data})
}

// broadcastMessage enqueues without blocking: if the pump is saturated the
// message is dropped and clients catch up on the next refresh.
func (s *Server) broadcastMessage(msg updateMessage) {
	select {
	case s.broadcast <- msg:
	default:
		s.logger.Warn("broadcast queue full, dropping message", "type", msg.Type)
	}
}

// pump fans broadcast messages out to every connected client.
func (s *Server) pump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.broadcast:
			s.clientsMu.RLock()
			conns := make([]*websocket.Conn, 0, len(s.clients))
			for conn := range s.clients {
				conns = append(conns, conn)
			}
			s.clientsMu.RUnlock()

			for _, conn := range conns {
				if err := conn.WriteJSON(msg); err != nil {
					s.logger.Debug("client write failed", "err", err)
					conn.Close()
				}
			}
		}
	}
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
}
