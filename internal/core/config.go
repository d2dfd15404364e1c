package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW   int     // Screen width in characters
	ScreenH   int     // Screen height in characters
	Seed      int64   // RNG seed for deterministic gameplay
	Spawn4    float64 // Probability that a spawned tile is a 4
	AutoReset bool    // Start a new board as soon as no move is left
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		Seed:      0, // 0 means use current time in platform layer
		Spawn4:    0.10,
		AutoReset: true,
	}
}

// GameState summarizes a game for the platform.
type GameState struct {
	MaxTile  int  // Highest tile on the board
	Tiles    int  // Number of occupied cells
	GameOver bool // Whether the game is waiting for a restart
}

// StepResult is returned by Game.Step() after each input event.
type StepResult struct {
	State   GameState
	Changed bool // The board changed as a result of this step
	Ended   bool // A game ended during this step (it may already be reset)
}
