package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/undermask/warehouse/internal/core"
	"github.com/undermask/warehouse/internal/game"
	"github.com/undermask/warehouse/internal/levels"
	"github.com/undermask/warehouse/internal/platform/tui"
	"github.com/undermask/warehouse/internal/storage"
	"github.com/undermask/warehouse/internal/validate"
)

var flagPlayFile string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign or a single level",
	Long: `Play starts the game in the current terminal. With no arguments it runs
the builtin campaign; with a level ID it runs that level on its own.

Examples:
  warehouse play
  warehouse play push_tutorial
  warehouse play --file ./my-levels/tricky.txt`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		appCfg := mustLoadConfig()

		var src levels.Source
		single := false
		switch {
		case flagPlayFile != "":
			loaded, err := levels.LoadFile(flagPlayFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading level file: %v\n", err)
				os.Exit(1)
			}
			src = loaded
			single = true
		case len(args) == 1:
			if !levels.Exists(args[0]) {
				fmt.Fprintf(os.Stderr, "Unknown level: %s\n", args[0])
				fmt.Fprintln(os.Stderr, "Run 'warehouse levels' to see available levels.")
				os.Exit(1)
			}
			loaded, err := levels.Get(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			src = loaded
			single = true
		}

		if single {
			rep := validate.Check(src.Text)
			if rep.Err != nil {
				fmt.Fprintf(os.Stderr, "Level %s is not playable: %v\n", src.ID, rep.Err)
				os.Exit(1)
			}
		}

		width, height, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			width, height = 80, 24
		}

		rtCfg := core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: tickRate(appCfg),
		}

		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open solve database: %v\n", err)
			fmt.Fprintln(os.Stderr, "Solves will not be saved.")
			store = nil
		}

		var rec game.SolveRecorder
		if store != nil {
			rec = store
		}

		var g tui.Game
		if single {
			g = game.NewSingle(src, appCfg, rec)
		} else {
			g = game.NewCampaign(appCfg, rec)
		}

		runErr := tui.Run(g, rtCfg)

		if store != nil {
			store.Close()
		}

		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			os.Exit(1)
		}
	},
}

func init() {
	playCmd.Flags().StringVar(&flagPlayFile, "file", "", "Play a level straight from a file")
}
