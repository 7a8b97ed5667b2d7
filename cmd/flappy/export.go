package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/assets"
)

var exportCmd = &cobra.Command{
	Use:   "export-assets <dir>",
	Short: "Write the built-in sprites and sounds to a directory",
	Long: `Write the procedural asset pack in the layout --assets reads, so it can
be edited and loaded back:

  Objects/{bg,base,pipe,downflap,midflap,upflap}.png
  UI/{gameover,message}.png
  UI/Numbers/{0..9}.png
  sounds/{wing,hit,die,point,swoosh}.wav

Example:
  flappy export-assets ./assets && flappy window --assets ./assets`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(_ *cobra.Command, args []string) error {
	pack, err := assets.Procedural()
	if err != nil {
		return err
	}
	if err := pack.Export(args[0]); err != nil {
		return err
	}
	fmt.Printf("Assets written to %s\n", args[0])
	return nil
}
