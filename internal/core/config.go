package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic deals; 0 means time-based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Final score once the game is over
	GameOver bool // Whether the game has ended
	Won      bool // Whether the ended game was a win
}

// StepResult is returned by Game.Step() after each player action.
type StepResult struct {
	State GameState
	// Message is a short line describing what the action did, for the HUD.
	Message string
}
