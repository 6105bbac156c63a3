package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/undermask/warehouse/internal/levels"
	"github.com/undermask/warehouse/internal/validate"
)

var flagCheckWatch bool

var checkCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Validate level files",
	Long: `Check parses and validates level files without playing them. A path can
be a single file or a directory, which is searched for level files.

With --watch, check keeps running and revalidates files as they change,
which pairs well with editing levels in another window.

Examples:
  warehouse check levels/medium3.txt
  warehouse check ./my-levels
  warehouse check ./my-levels --watch`,
	Args: cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		files, dirs, err := collectLevelPaths(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "No level files found.")
			os.Exit(1)
		}

		failed := 0
		for _, path := range files {
			if !checkOne(path) {
				failed++
			}
		}

		if !flagCheckWatch {
			if failed > 0 {
				fmt.Printf("\n%d of %d files failed.\n", failed, len(files))
				os.Exit(1)
			}
			fmt.Printf("\n%d files ok.\n", len(files))
			return
		}

		watcher, err := levels.NewWatcher(dirs...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting watcher: %v\n", err)
			os.Exit(1)
		}
		defer watcher.Close()

		fmt.Println("\nWatching for changes. Press Ctrl+C to stop.")
		for {
			select {
			case path, ok := <-watcher.Events:
				if !ok {
					return
				}
				if _, err := os.Stat(path); err != nil {
					continue
				}
				checkOne(path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
			}
		}
	},
}

func init() {
	checkCmd.Flags().BoolVar(&flagCheckWatch, "watch", false, "Keep running and revalidate files on change")
}

// checkOne validates a single file and prints one line per outcome, plus
// a detail line per warning. Returns false when the level is unplayable.
func checkOne(path string) bool {
	src, err := levels.LoadFile(path)
	if err != nil {
		fmt.Printf("FAIL  %s: %v\n", path, err)
		return false
	}

	rep := validate.Check(src.Text)
	if rep.Err != nil {
		fmt.Printf("FAIL  %s: %v\n", path, rep.Err)
		return false
	}

	if len(rep.Warnings) > 0 {
		fmt.Printf("warn  %s\n", path)
		for _, w := range rep.Warnings {
			fmt.Printf("      %s\n", w)
		}
		return true
	}

	fmt.Printf("ok    %s\n", path)
	return true
}

// collectLevelPaths expands the command arguments into level files to
// check and directories to watch.
func collectLevelPaths(args []string) (files, dirs []string, err error) {
	seenDir := make(map[string]bool)
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, nil, err
		}

		if !info.IsDir() {
			files = append(files, arg)
			if dir := filepath.Dir(arg); !seenDir[dir] {
				seenDir[dir] = true
				dirs = append(dirs, dir)
			}
			continue
		}

		if !seenDir[arg] {
			seenDir[arg] = true
			dirs = append(dirs, arg)
		}
		walkErr := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && !seenDir[path] {
					seenDir[path] = true
					dirs = append(dirs, path)
				}
				return nil
			}
			if levels.IsLevelFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, nil, walkErr
		}
	}
	return files, dirs, nil
}
