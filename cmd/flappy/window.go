package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/audio"
	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/platform/results"
	"github.com/vovakirdan/flappy-arcade/internal/platform/window"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

var windowCmd = &cobra.Command{
	Use:   "window [variant]",
	Short: "Play in a desktop window",
	Long: `Open a 520x520 window and play the given variant (default: classic).

Controls:
  Space/Enter/Up/W/Left click - Flap (also starts and restarts)
  Esc/Q                       - Quit

Examples:
  flappy window
  flappy window precise --assets ./assets`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, args []string) error {
	id, err := variantArg(args)
	if err != nil {
		return err
	}

	e, err := setup(false, true)
	if err != nil {
		return err
	}
	defer e.close()

	created, err := registry.Create(id, e.deps)
	if err != nil {
		return err
	}
	game, ok := created.(*flappy.Game)
	if !ok {
		return fmt.Errorf("variant %q cannot be drawn in a window", id)
	}
	game.Reset(runtimeConfig())

	var player audio.Player = audio.Nop{}
	if !flagMute {
		sound, err := window.NewSound(e.deps.Assets.Sounds)
		if err != nil {
			return err
		}
		player = sound
	}

	return window.Run(game, window.Options{
		Sink: results.Sink{
			Keeper: e.keeper,
			Store:  e.store,
			Logger: e.logger,
			Player: playerName(),
		},
		Audio:  player,
		Logger: e.logger,
		TPS:    flagFPS,
		Title:  game.Title(),
	})
}
