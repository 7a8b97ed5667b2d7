package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in the terminal",
	Long: `Start playing the given variant (default: classic) in the terminal.

Controls:
  Space/Up/W/Enter - Flap (also starts and restarts)
  B/Esc            - Leave (outside a run)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Examples:
  flappy play
  flappy play precise
  flappy play --seed 7 --fps 30
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	id, err := variantArg(args)
	if err != nil {
		return err
	}

	e, err := setup(true, true)
	if err != nil {
		return err
	}
	defer e.close()

	player, err := e.speaker()
	if err != nil {
		return err
	}

	game, err := registry.Create(id, e.deps)
	if err != nil {
		return err
	}

	e.logger.Info("playing", "variant", id, "fps", flagFPS, "seed", flagSeed)
	return tui.Run(game, runtimeConfig(), tui.Options{
		Keeper:     e.keeper,
		Store:      e.store,
		Audio:      player,
		Logger:     e.logger,
		Player:     playerName(),
		MaxFrameDT: e.deps.Config.World.MaxFrameDT,
	})
}
