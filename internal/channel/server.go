package channel

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/philipparndt/cylinderworks/internal/logging"
)

// Path is the HTTP path of the websocket endpoint.
const Path = "/" + Name

// Request is a call frame sent by a shell.
type Request struct {
	ID     uint64         `json:"id"`
	Method string         `json:"method"`
	Args   map[string]any `json:"args,omitempty"`
}

// Response answers the Request with the same ID.
type Response struct {
	ID             uint64 `json:"id"`
	Result         any    `json:"result,omitempty"`
	Error          *Error `json:"error,omitempty"`
	NotImplemented bool   `json:"notImplemented,omitempty"`
}

func respond(id uint64, r Result) Response {
	return Response{ID: id, Result: r.Value, Error: r.Err, NotImplemented: r.NotImplemented}
}

// encode marshals the response. A result that cannot be encoded turns
// into an error frame for the same call.
func (r Response) encode() []byte {
	data, err := json.Marshal(r)
	if err == nil {
		return data
	}
	data, _ = json.Marshal(Response{ID: r.ID, Error: &Error{Code: CodeEncode, Message: err.Error()}})
	return data
}

// Server exposes a Handler over websockets. It also answers plain GET
// requests on /snapshot with the current snapshot as JSON.
type Server struct {
	handler  *Handler
	upgrader websocket.Upgrader
	log      *slog.Logger
	mux      *http.ServeMux

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewServer wraps h.
func NewServer(h *Handler) *Server {
	s := &Server{
		handler: h,
		log:     logging.Logger().With("channel", Name),
		conns:   map[*websocket.Conn]struct{}{},
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc(Path, s.serveWebsocket)
	s.mux.HandleFunc("GET /snapshot", s.serveSnapshot)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.closeConns()
		_ = srv.Shutdown(shutdown)
	}()

	s.log.Info("diagnostics channel listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) serveSnapshot(w http.ResponseWriter, _ *http.Request) {
	data, err := json.Marshal(s.handler.Snapshot())
	if err != nil {
		s.log.Warn("encode snapshot", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(append(data, '\n')); err != nil {
		s.log.Warn("write snapshot", "err", err)
	}
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	s.track(conn, true)
	defer func() {
		s.track(conn, false)
		conn.Close()
	}()

	log := s.log.With("remote", r.RemoteAddr)
	log.Debug("shell connected")
	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read request", "err", err)
			}
			return
		}
		res := s.handler.Handle(Call{Method: req.Method, Args: req.Args})
		if err := conn.WriteMessage(websocket.TextMessage, respond(req.ID, res).encode()); err != nil {
			log.Warn("write response", "err", err)
			return
		}
	}
}

func (s *Server) track(c *websocket.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[c] = struct{}{}
	} else {
		delete(s.conns, c)
	}
}

func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(time.Second))
		c.Close()
	}
}
