package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Outgoing messages buffered per connection.
	sendBuffer = 16
)

// Config configures the WebSocket server.
type Config struct {
	// Variant is used when the client does not pass one.
	Variant string

	// ReadLimit caps incoming message size in bytes.
	ReadLimit int64

	// PingInterval is how often the server pings. The peer must answer
	// within twice this interval.
	PingInterval time.Duration

	// Rules carries the seed, spawn odds and auto reset setting.
	// A zero seed means every connection is seeded from the clock.
	Rules core.RuntimeConfig
}

// Server upgrades HTTP requests and runs one game per connection.
type Server struct {
	config   Config
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]*client
	wg    sync.WaitGroup
}

// NewServer creates a server.
func NewServer(cfg Config, logger *log.Logger) *Server {
	return &Server{
		config: cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browsers on any origin may play; there is nothing to protect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[string]*client),
	}
}

// Handler returns the HTTP routes: /ws for games.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	return mux
}

// ServeWS upgrades the request and starts a game on the new connection.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	variantID := r.URL.Query().Get("variant")
	if variantID == "" {
		variantID = s.config.Variant
	}
	variant, ok := t2048.VariantByID(variantID)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown variant %q", variantID), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := s.newClient(conn, variant)
	s.track(c)

	s.logger.Info("connection opened",
		"session", c.id,
		"variant", variant.ID,
		"remote", conn.RemoteAddr().String(),
	)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		c.writePump()
	}()
	go func() {
		defer s.wg.Done()
		c.readPump()
		s.untrack(c)
		s.logger.Info("connection closed", "session", c.id)
	}()
}

// Connections returns the number of open connections.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) track(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c.id] = c
}

func (s *Server) untrack(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c.id)
}

// closeAll closes every open connection, ending their pumps.
func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conns {
		c.conn.Close()
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down and
// waits for every connection to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("ws: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting WebSocket server", "address", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ws: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...", "connections", s.Connections())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	// Hijacked connections are not closed by Shutdown.
	s.closeAll()
	s.wg.Wait()
	return err
}

// client is one WebSocket connection and its game.
type client struct {
	id      string
	conn    *websocket.Conn
	send    chan ServerMessage
	session *t2048.Session
	logger  *log.Logger

	readLimit    int64
	pingInterval time.Duration
}

func (s *Server) newClient(conn *websocket.Conn, variant t2048.Variant) *client {
	seed := s.config.Rules.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := &client{
		id:           uuid.NewString(),
		conn:         conn,
		send:         make(chan ServerMessage, sendBuffer),
		readLimit:    s.config.ReadLimit,
		pingInterval: s.config.PingInterval,
	}
	c.logger = s.logger.With("session", c.id)
	c.session = t2048.NewSession(rand.New(rand.NewSource(seed)),
		t2048.WithSize(variant.Size),
		t2048.WithSpawn4(s.config.Rules.Spawn4),
		t2048.WithAutoReset(s.config.Rules.AutoReset),
		t2048.WithGameOverHandler(c.gameOver),
	)
	return c
}

// gameOver queues the final board ahead of the next state message.
func (c *client) gameOver(snap t2048.Snapshot) {
	c.logger.Info("game over", "max_tile", snap.MaxTile)
	c.send <- ServerMessage{
		Type:      TypeGameOver,
		SessionID: c.id,
		GameOver:  true,
		Board:     &snap,
	}
}

// state builds a state message for the current board.
func (c *client) state(changed bool) ServerMessage {
	snap := c.session.Snapshot()
	return ServerMessage{
		Type:      TypeState,
		SessionID: c.id,
		Changed:   changed,
		GameOver:  c.session.IsGameOver(),
		Board:     &snap,
	}
}

func (c *client) fail(err error) ServerMessage {
	return ServerMessage{
		Type:      TypeError,
		SessionID: c.id,
		GameOver:  c.session.IsGameOver(),
		Error:     err.Error(),
	}
}

// handle applies one client message and queues the replies.
func (c *client) handle(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.send <- c.fail(fmt.Errorf("malformed message: %w", err))
		return
	}

	switch msg.Type {
	case TypeMove:
		dir, err := t2048.ParseDirection(msg.Direction)
		if err != nil {
			c.send <- c.fail(err)
			return
		}
		changed := c.session.Move(dir)
		c.send <- c.state(changed)

	case TypeReset:
		c.session.Reset()
		c.send <- c.state(true)

	case TypeState:
		c.send <- c.state(false)

	default:
		c.send <- c.fail(fmt.Errorf("unknown message type %q", msg.Type))
	}
}

// readPump reads client messages until the connection fails. It is the only
// goroutine touching the session.
func (c *client) readPump() {
	defer func() {
		close(c.send)
		c.conn.Close()
	}()

	pongWait := 2 * c.pingInterval
	c.conn.SetReadLimit(c.readLimit)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.send <- c.state(false)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket error", "error", err)
			}
			return
		}
		c.handle(data)
	}
}

// writePump sends queued messages and keepalive pings.
func (c *client) writePump() {
	ticker := time.NewTicker(c.pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug("write failed", "error", err)
				c.drain()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.drain()
				return
			}
		}
	}
}

// drain discards queued messages so readPump never blocks on a dead writer.
func (c *client) drain() {
	c.conn.Close()
	for range c.send {
	}
}
