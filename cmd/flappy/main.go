// flappy is a Flappy Bird arcade for the terminal, a desktop window and SSH.
//
// Usage:
//
//	flappy list               - List game variants
//	flappy play [variant]     - Play in the terminal
//	flappy window [variant]   - Play in a 520x520 window
//	flappy menu               - Pick a variant interactively
//	flappy serve              - Start SSH server for remote play
//	flappy scores [variant]   - Show the leaderboard
//	flappy best               - Print the saved high score
//	flappy export-assets DIR  - Write the built-in sprites and sounds
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Leaderboard database (default: ~/.flappy/scores.db)
//	--save <path>         - High-score file (default: ./save.json)
//	--save-backend <name> - file or gdata
//	--config <path>       - Game constants YAML
//	--assets <dir>        - Asset directory (default: built-in sprites)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Log destination
//	--mute                - Disable sound
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/save"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

var (
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagSavePath    string
	flagSaveBackend string
	flagConfig      string
	flagAssets      string
	flagLogLevel    string
	flagLogFile     string
	flagMute        bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("flappy", "err", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal, a window, or over SSH",
	Long: `Flappy Bird: flap through the gaps between pipes for as long as you can.

Available commands:
  list           - Show the game variants
  play           - Play a variant in the terminal
  window         - Play a variant in a desktop window
  menu           - Interactive variant picker
  serve          - Start SSH server for remote play
  scores         - View the leaderboard
  best           - Print the saved high score
  export-assets  - Write the built-in sprites and sounds to a directory

Examples:
  flappy play
  flappy play precise --seed 42
  flappy window --assets ./assets
  flappy serve --ssh :2222
  flappy scores classic`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to leaderboard database")
	pf.StringVar(&flagSavePath, "save", save.DefaultPath, "Path to the high-score file")
	pf.StringVar(&flagSaveBackend, "save-backend", save.BackendFile, "High-score storage: file or gdata")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagAssets, "assets", "", "Asset directory (empty = built-in sprites and sounds)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file (terminal modes default to ~/.flappy/flappy.log)")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(exportCmd)
}
