package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Print the saved high score",
	Long: `Print the high score from the save record (--save, --save-backend).
A missing record is created with a score of 0.`,
	Args: cobra.NoArgs,
	RunE: runBest,
}

func runBest(_ *cobra.Command, _ []string) error {
	e, err := setup(false, true)
	if err != nil {
		return err
	}
	defer e.close()

	fmt.Printf("Best: %d\n", e.keeper.HighScore())
	return nil
}
