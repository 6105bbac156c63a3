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
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the warehouse with a level picker menu",
	Long: `Start the game in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
After a run ends, you return to the menu to pick again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Select level
  Tab          - View solves
  Q            - Quit

Examples:
  warehouse menu
  warehouse menu --fps 30
  warehouse menu --db ./solves.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	appCfg := mustLoadConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open solve database: %v\n", err)
		store = nil
	}

	var rec game.SolveRecorder
	if store != nil {
		rec = store
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate(appCfg),
	}

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		var g tui.Game
		switch {
		case menuResult.Campaign:
			g = game.NewCampaign(appCfg, rec)
		case menuResult.LevelID != "":
			src, getErr := levels.Get(menuResult.LevelID)
			if getErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", getErr)
				continue
			}
			g = game.NewSingle(src, appCfg, rec)
		default:
			continue
		}

		if err := tui.Run(g, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	if store != nil {
		store.Close()
	}
}
