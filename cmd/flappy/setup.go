package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-arcade/internal/assets"
	"github.com/vovakirdan/flappy-arcade/internal/audio"
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/save"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

// env is everything a command needs to start a game.
type env struct {
	logger *log.Logger
	deps   registry.Deps
	keeper *save.Keeper
	store  *storage.Store

	closers []func()
}

// newLogger builds the process logger. Terminal modes own the tty, so unless
// --log-file says otherwise they log to ~/.flappy/flappy.log.
func newLogger(tty bool, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	path := flagLogFile
	if path == "" && tty {
		path = filepath.Join(config.UserDir(), "flappy.log")
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// setup loads logging, configuration and assets. withSave also opens the
// high-score record and the leaderboard.
func setup(tty, withSave bool) (*env, error) {
	logger, closeLog, err := newLogger(tty, "flappy")
	if err != nil {
		return nil, err
	}
	e := &env{logger: logger, closers: []func(){closeLog}}

	e.deps, err = loadDeps()
	if err != nil {
		e.close()
		return nil, err
	}
	logger.Debug("loaded", "config", flagConfig, "assets", flagAssets)

	if withSave {
		backend, err := save.Open(flagSaveBackend, flagSavePath)
		if err != nil {
			e.close()
			return nil, err
		}
		e.keeper = save.NewKeeper(backend, logger)
		rec := e.keeper.Load()
		logger.Debug("high score loaded", "backend", backend, "high_score", rec.HighScore)

		// The leaderboard is optional.
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open scores database", "err", err)
		} else {
			e.store = store
			e.closers = append(e.closers, func() { store.Close() })
		}
	}
	return e, nil
}

// loadDeps reads the game constants and the asset pack.
func loadDeps() (registry.Deps, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return registry.Deps{}, err
	}
	pack, err := assets.Load(flagAssets)
	if err != nil {
		return registry.Deps{}, err
	}
	if err := pack.Fits(cfg); err != nil {
		return registry.Deps{}, err
	}
	return registry.Deps{Config: cfg, Assets: pack}, nil
}

// speaker opens terminal audio unless muted.
func (e *env) speaker() (audio.Player, error) {
	if flagMute {
		return audio.Nop{}, nil
	}
	sp, err := audio.NewSpeaker(e.deps.Assets.Sounds)
	if err != nil {
		return nil, fmt.Errorf("%w (use --mute to play without sound)", err)
	}
	e.closers = append(e.closers, sp.Close)
	return sp, nil
}

// close releases resources in reverse order of acquisition.
func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// variantArg returns the variant named in args, or the default.
func variantArg(args []string) (string, error) {
	id := flappy.DefaultVariant
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("%w %q (run 'flappy list')", registry.ErrUnknownVariant, id)
	}
	return id, nil
}

func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
