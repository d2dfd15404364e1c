package t2048

import (
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Game adapts a Session to the platform's registry.Game interface.
type Game struct {
	variant Variant
	session *Session

	// Screen dimensions
	screenW int
	screenH int

	tooSmall  bool
	justEnded bool // The last step ended a game
	lastFinal Snapshot
	onEnd     []func(Snapshot)
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// New creates a game for the given variant. Reset must be called before use.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// OnGameOver registers fn to be called with the final board of every game
// that ends. Handlers survive Reset.
func (g *Game) OnGameOver(fn func(Snapshot)) {
	g.onEnd = append(g.onEnd, fn)
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Session exposes the running session.
func (g *Game) Session() *Session {
	return g.session
}

// Reset starts a new session with the given config.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	g.session = NewSession(rng,
		WithSize(g.variant.Size),
		WithSpawn4(cfg.Spawn4),
		WithAutoReset(cfg.AutoReset),
		WithGameOverHandler(g.handleGameOver),
	)
	g.justEnded = false
	g.lastFinal = Snapshot{}

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// handleGameOver records the final board and forwards it.
func (g *Game) handleGameOver(snap Snapshot) {
	g.justEnded = true
	g.lastFinal = snap
	for _, fn := range g.onEnd {
		fn(snap)
	}
}

// Resize updates the screen size and rechecks whether the board fits.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < g.minWidth() || h < g.minHeight()
}

// Step applies one input event.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall || in.Empty() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.session.Reset()
		g.justEnded = false
		return core.StepResult{State: g.State(), Changed: true}
	}

	dir, ok := directionFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	g.justEnded = false
	changed := g.session.Move(dir)

	return core.StepResult{
		State:   g.State(),
		Changed: changed,
		Ended:   g.justEnded,
	}
}

// directionFor picks the move direction from an input frame.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	b := g.session.Board()
	return core.GameState{
		MaxTile:  b.MaxTile(),
		Tiles:    b.TileCount(),
		GameOver: g.session.State() == StateGameOver,
	}
}
