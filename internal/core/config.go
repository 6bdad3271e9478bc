package core

// RuntimeConfig is handed to a game when it is (re)started.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the platform
	Seed     int64 // RNG seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 FPS.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the summary the platform reads after every step.
type GameState struct {
	Score    int
	Lines    int
	Level    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by a game's Step.
type StepResult struct {
	State GameState

	// Frozen is true when the frame did not advance the simulation (paused,
	// window too small). Recorders skip frozen frames.
	Frozen bool

	// Events are human-readable notes about this step ("locked", "cleared 2"),
	// used for debug logging only.
	Events []string
}
