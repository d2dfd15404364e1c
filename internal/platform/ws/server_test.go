package ws

import (
	"context"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

func testServer(t *testing.T, autoReset bool) (*Server, *httptest.Server) {
	t.Helper()
	rules := core.DefaultConfig()
	rules.Seed = 99
	rules.AutoReset = autoReset

	s := NewServer(Config{
		Variant:      "2048",
		ReadLimit:    4096,
		PingInterval: time.Second,
		Rules:        rules,
	}, log.New(io.Discard))

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMsg(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return msg
}

func TestInitialState(t *testing.T) {
	_, ts := testServer(t, true)
	conn := dial(t, ts, "")

	msg := readMsg(t, conn)
	if msg.Type != TypeState {
		t.Fatalf("first message type = %q, want state", msg.Type)
	}
	if msg.SessionID == "" {
		t.Error("session ID should be set")
	}
	if msg.Board == nil || msg.Board.Size != 4 || msg.Board.Tiles != 2 {
		t.Errorf("unexpected initial board %+v", msg.Board)
	}
	if msg.GameOver {
		t.Error("new game should not be over")
	}
}

func TestVariantQuery(t *testing.T) {
	_, ts := testServer(t, true)
	conn := dial(t, ts, "?variant=2048_large")

	msg := readMsg(t, conn)
	if msg.Board == nil || msg.Board.Size != 5 {
		t.Errorf("board = %+v, want size 5", msg.Board)
	}
}

func TestUnknownVariantRejected(t *testing.T) {
	_, ts := testServer(t, true)

	resp, err := http.Get(ts.URL + "/ws?variant=2048_tiny")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMoveAndReset(t *testing.T) {
	_, ts := testServer(t, true)
	conn := dial(t, ts, "")
	first := readMsg(t, conn)

	changed := false
	for _, dir := range []string{"left", "right", "up", "down"} {
		if err := conn.WriteJSON(ClientMessage{Type: TypeMove, Direction: dir}); err != nil {
			t.Fatal(err)
		}
		msg := readMsg(t, conn)
		if msg.Type != TypeState || msg.SessionID != first.SessionID {
			t.Fatalf("move reply = %+v", msg)
		}
		if msg.Changed {
			changed = true
			if msg.Board.Tiles < 2 {
				t.Errorf("changed board has %d tiles", msg.Board.Tiles)
			}
			break
		}
	}
	if !changed {
		t.Error("no direction changed a two-tile board")
	}

	if err := conn.WriteJSON(ClientMessage{Type: TypeReset}); err != nil {
		t.Fatal(err)
	}
	msg := readMsg(t, conn)
	if msg.Board.Tiles != 2 {
		t.Errorf("reset board has %d tiles, want 2", msg.Board.Tiles)
	}

	if err := conn.WriteJSON(ClientMessage{Type: TypeState}); err != nil {
		t.Fatal(err)
	}
	again := readMsg(t, conn)
	if again.Changed {
		t.Error("state query should not report a change")
	}
}

func TestErrors(t *testing.T) {
	_, ts := testServer(t, true)
	conn := dial(t, ts, "")
	readMsg(t, conn)

	tests := []struct {
		name string
		send string
		want string
	}{
		{"bad direction", `{"type":"move","direction":"sideways"}`, "unknown direction"},
		{"unknown type", `{"type":"undo"}`, "unknown message type"},
		{"malformed", `{"type":`, "malformed message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.send)); err != nil {
				t.Fatal(err)
			}
			msg := readMsg(t, conn)
			if msg.Type != TypeError || !strings.Contains(msg.Error, tt.want) {
				t.Errorf("got %+v, want error containing %q", msg, tt.want)
			}
		})
	}
}

// terminalClient builds a client whose board has no moves left.
func terminalClient(t *testing.T, autoReset bool) *client {
	t.Helper()
	b, err := t2048.LoadBoard([][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	c := &client{
		id:     "test",
		send:   make(chan ServerMessage, sendBuffer),
		logger: log.New(io.Discard),
	}
	c.session = t2048.NewSessionWithBoard(b,
		t2048.WithAutoReset(autoReset),
		t2048.WithGameOverHandler(c.gameOver))
	return c
}

func TestGameOverWithAutoReset(t *testing.T) {
	c := terminalClient(t, true)

	c.handle([]byte(`{"type":"move","direction":"left"}`))

	over := <-c.send
	if over.Type != TypeGameOver || !over.GameOver {
		t.Fatalf("first message = %+v, want game_over", over)
	}
	if over.Board.Tiles != 16 {
		t.Errorf("final board has %d tiles, want 16", over.Board.Tiles)
	}

	state := <-c.send
	if state.Type != TypeState || !state.GameOver {
		t.Errorf("state after auto reset = %+v, want game_over set", state)
	}
	if state.Board.Tiles != 2 || state.Board.State != t2048.StatePlaying {
		t.Errorf("fresh board = %+v, want 2 tiles in play", state.Board)
	}

	c.handle([]byte(`{"type":"state"}`))
	if msg := <-c.send; !msg.GameOver {
		t.Error("game_over should stay set until the next move")
	}

	c.handle([]byte(`{"type":"move","direction":"left"}`))
	if msg := <-c.send; msg.Type != TypeState || msg.GameOver {
		t.Errorf("move on the fresh board = %+v, want game_over cleared", msg)
	}
}

func TestGameOverWithoutAutoReset(t *testing.T) {
	c := terminalClient(t, false)

	c.handle([]byte(`{"type":"move","direction":"up"}`))
	<-c.send
	state := <-c.send
	if !state.GameOver || state.Board.Tiles != 16 {
		t.Errorf("state = %+v, want game over on the full board", state)
	}

	// Further moves are ignored and do not repeat the event.
	c.handle([]byte(`{"type":"move","direction":"down"}`))
	if msg := <-c.send; msg.Type != TypeState || msg.Changed {
		t.Errorf("move after game over = %+v", msg)
	}

	c.handle([]byte(`{"type":"reset"}`))
	if msg := <-c.send; msg.GameOver {
		t.Error("reset should leave game over")
	}
}

func TestServeShutdown(t *testing.T) {
	s := NewServer(Config{
		Variant:      "2048",
		ReadLimit:    4096,
		PingInterval: time.Second,
		Rules:        core.DefaultConfig(),
	}, log.New(io.Discard))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws", nil)
	if err != nil {
		cancel()
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	readMsg(t, conn)

	if got := s.Connections(); got != 1 {
		t.Errorf("Connections() = %d, want 1", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection should be closed after shutdown")
	}
	if got := s.Connections(); got != 0 {
		t.Errorf("Connections() after shutdown = %d, want 0", got)
	}
}
