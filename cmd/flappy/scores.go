package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the leaderboard",
	Long: `Display the top runs of a variant (default: classic).

With --stats, print statistics instead: of the named variant, or of every
variant when none is named. --clear deletes the runs of the variant.

Examples:
  flappy scores
  flappy scores precise --limit 20
  flappy scores --stats
  flappy scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show statistics for every variant")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every run of the variant")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresStats && len(args) == 0 {
		return printStats(store)
	}

	id, err := variantArg(args)
	if err != nil {
		return err
	}

	if flagScoresStats {
		st, err := store.GetGameStats(id)
		if err != nil {
			return err
		}
		printStatsHeader()
		printStatsRow(st)
		return nil
	}

	if flagScoresClear {
		if err := store.ClearScores(id); err != nil {
			return err
		}
		fmt.Printf("Cleared the %s leaderboard.\n", id)
		return nil
	}

	scores, err := store.TopScores(id, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title(id))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'flappy play %s' to set the first high score!\n", id)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-12s  %s\n", "Rank", "Score", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-12s  %s\n", "----", "-----", "------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-6d  %-12s  %s\n", i+1, entry.Score, entry.Player, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(id); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	printStatsHeader()
	for _, id := range ids {
		printStatsRow(stats[id])
	}
	return nil
}

func printStatsHeader() {
	fmt.Printf("  %-10s  %5s  %5s  %7s  %s\n", "Variant", "Runs", "Best", "Average", "Last played")
}

func printStatsRow(s *storage.GameStats) {
	last := "never"
	if !s.LastPlayed.IsZero() {
		last = s.LastPlayed.Format("2006-01-02 15:04")
	}
	fmt.Printf("  %-10s  %5d  %5d  %7.1f  %s\n", s.Variant, s.GamesCount, s.HighScore, s.AvgScore, last)
}

func title(id string) string {
	for _, info := range registry.List() {
		if info.ID == id {
			return info.Title
		}
	}
	return id
}
