package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and pacing.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current wave/level, 1-based
	GameOver bool // Whether the game has ended
	Won      bool // Whether the game ended in a win
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Updated reports whether the simulation advanced this tick.
	// Games with a tick divider skip most host ticks.
	Updated bool
}
