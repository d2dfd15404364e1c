package t2048

// State is the session-level game state.
type State string

const (
	StatePlaying  State = "playing"
	StateGameOver State = "game_over"
)

// Session owns one Board and one MoveEngine and runs the playing/game-over
// state machine. A Session must be driven by a single goroutine.
type Session struct {
	board     *Board
	engine    MoveEngine
	state     State
	ended     bool // last Move finished a game; cleared by the next Move or Reset
	autoReset bool
	handlers  []func(Snapshot)
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	size      int
	spawn4    float64
	spawn4Set bool
	autoReset bool
	handlers  []func(Snapshot)
}

// WithSize sets the board dimension. It cannot change after creation.
func WithSize(n int) SessionOption {
	return func(o *sessionOptions) {
		o.size = n
	}
}

// WithSpawn4 sets the probability of spawning a 4.
func WithSpawn4(p float64) SessionOption {
	return func(o *sessionOptions) {
		o.spawn4 = p
		o.spawn4Set = true
	}
}

// WithAutoReset controls whether a terminal board is replaced immediately.
// Enabled by default.
func WithAutoReset(enabled bool) SessionOption {
	return func(o *sessionOptions) {
		o.autoReset = enabled
	}
}

// WithGameOverHandler registers fn to be called with the final board
// whenever the session reaches a terminal state.
func WithGameOverHandler(fn func(Snapshot)) SessionOption {
	return func(o *sessionOptions) {
		o.handlers = append(o.handlers, fn)
	}
}

// NewSession creates a session with a fresh board holding two tiles.
func NewSession(rng Source, opts ...SessionOption) *Session {
	o := sessionOptions{
		size:      DefaultSize,
		spawn4:    DefaultSpawn4,
		autoReset: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Session{
		board:     NewBoard(o.size, rng, WithSpawn4Probability(o.spawn4)),
		state:     StatePlaying,
		autoReset: o.autoReset,
		handlers:  o.handlers,
	}
}

// NewSessionWithBoard wraps an existing board, e.g. one built by LoadBoard.
// WithSize is ignored since the board's size is already fixed. WithSpawn4
// replaces the board's spawn probability.
func NewSessionWithBoard(b *Board, opts ...SessionOption) *Session {
	o := sessionOptions{autoReset: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.spawn4Set {
		WithSpawn4Probability(o.spawn4)(b)
	}

	return &Session{
		board:     b,
		state:     StatePlaying,
		autoReset: o.autoReset,
		handlers:  o.handlers,
	}
}

// Move applies one move and reports whether the board changed.
// Moves are ignored while the session is in StateGameOver.
func (s *Session) Move(dir Direction) bool {
	if s.state == StateGameOver {
		return false
	}
	s.ended = false

	switch s.engine.Apply(s.board, dir) {
	case OutcomeMoved:
		return true
	case OutcomeTerminal:
		s.endGame()
	}
	return false
}

// endGame enters StateGameOver, notifies handlers and optionally restarts.
func (s *Session) endGame() {
	s.state = StateGameOver

	snap := s.Snapshot()
	for _, fn := range s.handlers {
		fn(snap)
	}

	if s.autoReset {
		s.Reset()
	}
	s.ended = true
}

// Reset starts a new game on a fresh board of the same size.
func (s *Session) Reset() {
	s.board.Reset()
	s.state = StatePlaying
	s.ended = false
}

// IsGameOver reports whether the session is in StateGameOver or the most
// recent Move ended a game. With auto reset on, the board is already fresh
// and the flag stays set until the next Move or Reset.
func (s *Session) IsGameOver() bool {
	return s.state == StateGameOver || s.ended
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// AutoReset reports whether terminal boards are replaced automatically.
func (s *Session) AutoReset() bool {
	return s.autoReset
}

// CellValue returns the tile at (row, col), or Empty.
func (s *Session) CellValue(row, col int) int {
	return s.board.ValueAt(row, col)
}

// GridSize returns the board dimension.
func (s *Session) GridSize() int {
	return s.board.Size()
}

// Board exposes the underlying board for read access.
func (s *Session) Board() *Board {
	return s.board
}
