package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters (terminal front end)
	ScreenH  int   // Screen height in characters (terminal front end)
	TickRate int   // Frames per second requested from the frame pacer
	Seed     int64 // RNG seed; 0 means unseeded (time based)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Phase is the game state machine position.
type Phase string

const (
	PhaseStart    Phase = "start"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
)

// GameState represents the current state of a game, as seen by the platform.
type GameState struct {
	Phase     Phase
	Score     int  // Score of the current run
	HighScore int  // Best score known to the game
	GameOver  bool // Phase == PhaseGameOver
	NewRecord bool // The run that just ended beat the previous high score
}

// StepResult is returned by Game.Step after each simulated frame.
type StepResult struct {
	State GameState

	// Cues are the audio cues fired during this frame, in order.
	Cues []Cue

	// Finished is true exactly on the frame a run ends.
	Finished bool
}
