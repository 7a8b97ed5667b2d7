// Package save persists the high-score record.
//
// The record is loaded once at startup and written back immediately, as a
// whole, whenever a finished run beats it. A record that cannot be read is
// never an error for the player: the game simply starts from zero.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	// ErrNotFound is returned by a Backend that holds no record yet.
	ErrNotFound = errors.New("save: no record")
	// ErrCorrupt is returned when stored bytes do not decode to a valid record.
	ErrCorrupt = errors.New("save: corrupt record")
)

// Record is the persisted state.
type Record struct {
	HighScore int `json:"high_score"`
}

// Backend stores the encoded record somewhere.
type Backend interface {
	Read() ([]byte, error)
	Write(data []byte) error
	String() string
}

// Encode renders the record the way it is stored on disk.
func Encode(rec Record) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("save: encode: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a stored record. Negative scores are rejected.
func Decode(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if rec.HighScore < 0 {
		return Record{}, fmt.Errorf("%w: negative high score %d", ErrCorrupt, rec.HighScore)
	}
	return rec, nil
}

// Keeper owns the high-score record of one player.
type Keeper struct {
	mu      sync.Mutex
	backend Backend
	logger  *log.Logger
	rec     Record
}

// NewKeeper creates a keeper over the backend. Call Load before use.
func NewKeeper(backend Backend, logger *log.Logger) *Keeper {
	if logger == nil {
		logger = log.Default()
	}
	return &Keeper{backend: backend, logger: logger}
}

// Load reads the record from the backend.
// Missing: the default record is written and used.
// Unreadable or corrupt: zero is used and the problem is logged at debug level.
func (k *Keeper) Load() Record {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.rec = Record{}
	data, err := k.backend.Read()
	switch {
	case errors.Is(err, ErrNotFound):
		if err := k.write(k.rec); err != nil {
			k.logger.Debug("could not create save", "backend", k.backend, "err", err)
		}
		return k.rec
	case err != nil:
		k.logger.Debug("could not read save", "backend", k.backend, "err", err)
		return k.rec
	}

	rec, err := Decode(data)
	if err != nil {
		k.logger.Debug("ignoring save", "backend", k.backend, "err", err)
		return k.rec
	}
	k.rec = rec
	return k.rec
}

// HighScore returns the best score known to the keeper.
func (k *Keeper) HighScore() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.rec.HighScore
}

// Submit offers a finished run. The record is updated and written back only
// when score beats it; improved reports whether that happened. The in-memory
// record is updated even if the write fails.
func (k *Keeper) Submit(score int) (improved bool, err error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if score <= k.rec.HighScore {
		return false, nil
	}
	k.rec.HighScore = score
	if err := k.write(k.rec); err != nil {
		return true, err
	}
	return true, nil
}

func (k *Keeper) write(rec Record) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}
	if err := k.backend.Write(data); err != nil {
		return fmt.Errorf("save: write %s: %w", k.backend, err)
	}
	return nil
}
