// warehouse is a terminal puzzle about a masked warehouseperson pushing
// crystal crates onto their marked spots.
//
// Usage:
//
//	warehouse play [level]    - Play the campaign or a single level
//	warehouse menu            - Interactive level picker
//	warehouse levels          - List available levels
//	warehouse check <path>    - Validate level files
//	warehouse scores [level]  - Show recorded solves
//	warehouse serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Override the configured tick rate
//	--db <path>       - Set database path (default: ~/.warehouse/solves.db)
//	--config <path>   - Load gameplay config from a file
//	--levels <dir>    - Register an extra directory of level files
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/undermask/warehouse/internal/config"
	"github.com/undermask/warehouse/internal/levels"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagConfig    string
	flagLevelsDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "warehouse",
	Short: "The Masked Warehouseperson - a crystal-pushing puzzle in your terminal",
	Long: `The Masked Warehouseperson is a terminal puzzle game. Push crystal
crates onto their marked spots, and collect masks to gain powers:
the blue mask pushes, the red mask breaks, the pale mask walks through.

Available commands:
  play     - Play the campaign or a single level
  menu     - Interactive level picker
  levels   - List all available levels
  check    - Validate level files
  scores   - View recorded solves
  serve    - Start SSH server for remote play

Examples:
  warehouse play
  warehouse play push_tutorial
  warehouse menu
  warehouse check ./my-levels --watch
  warehouse serve --ssh :2222
  warehouse scores push_tutorial`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		registerLevelPack()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.warehouse/solves.db", "Path to solves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to gameplay config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of extra level files to register")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// mustLoadConfig loads the gameplay config, treating a broken explicit
// config file as fatal.
func mustLoadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// tickRate resolves the effective tick rate: the --fps flag wins over the
// config file.
func tickRate(cfg config.Config) int {
	if flagFPS > 0 {
		return flagFPS
	}
	return cfg.Game.TickRate
}

// registerLevelPack registers the levels from --levels, so every command
// sees them alongside the builtin campaign.
func registerLevelPack() {
	if flagLevelsDir == "" {
		return
	}

	sources, err := levels.LoadDir(flagLevelsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level pack: %v\n", err)
		os.Exit(1)
	}

	for _, src := range sources {
		if levels.Exists(src.ID) {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: a level with this ID already exists\n", src.ID)
			continue
		}
		levels.Register(src)
	}
}
