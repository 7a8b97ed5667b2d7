// Package results stores finished runs for the front ends: the player's
// high-score record and the shared leaderboard.
package results

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/save"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

// Sink receives finished runs. Nil collaborators are skipped.
type Sink struct {
	Keeper *save.Keeper
	Store  *storage.Store
	Logger *log.Logger
	Player string
}

// Best returns the high score the sink knows about.
func (s Sink) Best() int {
	if s.Keeper == nil {
		return 0
	}
	return s.Keeper.HighScore()
}

// Record stores a finished run and returns the high score afterwards.
// Failures are logged and never interrupt play.
func (s Sink) Record(variant string, score int) int {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("variant", variant, "score", score)

	if s.Keeper != nil {
		improved, err := s.Keeper.Submit(score)
		if err != nil {
			logger.Warn("could not write high score", "err", err)
		}
		if improved {
			logger.Info("new high score")
		}
	}

	// Zero-point runs are kept off the leaderboard.
	if s.Store != nil && score > 0 {
		if _, err := s.Store.SaveScore(variant, s.Player, score); err != nil {
			logger.Warn("could not record score", "err", err)
		}
	}
	logger.Debug("run finished")
	return s.Best()
}
