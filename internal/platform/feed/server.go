package feed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/storage"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second // Must be less than pongWait
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Config holds the feed server settings.
type Config struct {
	Address  string // host:port to listen on
	TickRate int    // Simulation ticks per second for every connection
}

// DefaultConfig returns the default feed server settings.
func DefaultConfig() Config {
	return Config{Address: ":8090", TickRate: 60}
}

// Server accepts websocket renderers, one simulation per connection.
type Server struct {
	cfg      Config
	runner   config.RunnerConfig
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	clients  atomic.Int64
}

// NewServer creates a feed server. store may be nil.
func NewServer(cfg Config, runner config.RunnerConfig, store *storage.Store, logger *log.Logger) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	return &Server{
		cfg:    cfg,
		runner: runner,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // Renderers are served from anywhere
			},
		},
	}
}

// Handler returns the HTTP routes: /ws for the feed and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok %d\n", s.clients.Load())
	})
	return mux
}

// Clients returns the number of connected renderers.
func (s *Server) Clients() int64 {
	return s.clients.Load()
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting feed server", "address", s.cfg.Address, "tick_rate", s.cfg.TickRate)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("feed: server error: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down feed server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleWebSocket upgrades the request and runs the connection loop on the
// handler goroutine.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		inputs: make(chan inbound, sendBuffer),
		done:   make(chan struct{}),
		logger: s.logger.With("remote", conn.RemoteAddr().String()),
	}

	s.clients.Add(1)
	defer s.clients.Add(-1)
	c.logger.Info("renderer connected")

	go c.writePump()
	go c.readPump()
	s.run(r.Context(), c)
	c.logger.Info("renderer disconnected")
}

// run owns the session: it applies client messages and steps the
// simulation at the fixed tick rate.
func (s *Server) run(ctx context.Context, c *client) {
	defer func() {
		close(c.done)
		close(c.send)
	}()

	session := NewSession(s.runner, s.cfg.TickRate)
	session.OnRunEnd = s.saveRun(c.logger)
	defer session.Close()

	c.queue(session.Welcome())

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case in, ok := <-c.inputs:
			if !ok {
				return
			}
			if in.err != nil {
				c.queue(ErrorMsg{Type: MsgError, Message: in.err.Error()})
				continue
			}
			frame, err := session.Handle(in.msg)
			if err != nil {
				c.queue(ErrorMsg{Type: MsgError, Message: err.Error()})
				continue
			}
			if frame != nil {
				c.queue(frame)
			}

		case <-ticker.C:
			if frame, ok := session.Tick(); ok {
				c.queue(frame)
			}
		}
	}
}

func (s *Server) saveRun(logger *log.Logger) func(storage.Run) {
	return func(r storage.Run) {
		logger.Info("run finished", "mode", r.Mode, "outcome", r.Outcome, "score", r.Score, "distance", r.Distance)
		if s.store == nil {
			return
		}
		if _, err := s.store.SaveRun(r); err != nil {
			logger.Warn("could not save run", "error", err)
		}
	}
}

// inbound is a decoded client message or the reason it could not be decoded.
type inbound struct {
	msg ClientMsg
	err error
}

// client is the transport half of a connection.
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	inputs chan inbound
	done   chan struct{}
	logger *log.Logger
}

// queue encodes v and drops it when the client is not keeping up.
func (c *client) queue(v any) {
	data, err := Encode(v)
	if err != nil {
		c.logger.Error("encode failed", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Debug("send buffer full, frame dropped")
	}
}

// readPump decodes client messages until the connection fails.
func (c *client) readPump() {
	defer close(c.inputs)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read error", "error", err)
			}
			return
		}

		msg, err := DecodeClient(data)
		select {
		case c.inputs <- inbound{msg: msg, err: err}:
		case <-c.done:
			return
		}
	}
}

// writePump writes queued frames and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				//nolint:errcheck // Best-effort close frame
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				c.logger.Debug("write error", "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
