package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start the arcade in interactive menu mode.

After a game you return to the menu to pick again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Leaderboard
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := setup(true, true)
	if err != nil {
		return err
	}
	defer e.close()

	player, err := e.speaker()
	if err != nil {
		return err
	}

	opts := tui.Options{
		Keeper:     e.keeper,
		Store:      e.store,
		Audio:      player,
		Logger:     e.logger,
		Player:     playerName(),
		MaxFrameDT: e.deps.Config.World.MaxFrameDT,
	}
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg, e.keeper.HighScore())
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(opts, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID, e.deps)
		if err != nil {
			e.logger.Error("could not create game", "variant", menuResult.GameID, "err", err)
			continue
		}

		if err := tui.Run(game, cfg, opts); err != nil {
			return err
		}
	}
}
