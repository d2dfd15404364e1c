package ws

import "github.com/vovakirdan/tui-2048/internal/games/t2048"

// Message types.
const (
	TypeMove     = "move"
	TypeReset    = "reset"
	TypeState    = "state"
	TypeGameOver = "game_over"
	TypeError    = "error"
)

// ClientMessage is a request from the browser.
type ClientMessage struct {
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"`
}

// ServerMessage is pushed to the browser.
type ServerMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	Changed   bool            `json:"changed,omitempty"`
	GameOver  bool            `json:"game_over"`
	Board     *t2048.Snapshot `json:"board,omitempty"`
	Error     string          `json:"error,omitempty"`
}
