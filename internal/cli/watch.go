// SPDX-FileCopyrightText: 2026 oxspec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/oxspec/oxspec/internal/config"
	"github.com/oxspec/oxspec/internal/openapi"
)

var (
	watchMode     string
	watchDebounce int
	watchOnChange string
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch for file changes and regenerate specification",
	Long: `Watch for file changes and automatically regenerate the OpenAPI specification.

This command monitors your source files for changes and triggers a regeneration
when files are modified. It's useful during development to keep your API
documentation in sync with your code.

Example:
  oxspec watch                          # Watch current directory
  oxspec watch ./api                    # Watch specific paths
  oxspec watch --debounce 1000          # Wait 1s before regenerating
  oxspec watch --on-change "make test"  # Run command after regeneration`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchMode, "mode", "m", "full", "generation mode: full, routes-only, schemas-only")
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 500, "debounce duration in milliseconds")
	watchCmd.Flags().StringVar(&watchOnChange, "on-change", "", "command to run after regeneration")
}

func runWatch(cmd *cobra.Command, args []string) error {
	generateMode = watchMode
	cfg, paths, err := loadGenerateConfig(args)
	if err != nil {
		return err
	}

	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}
	if watchOnChange != "" {
		cfg.Watch.OnChange = watchOnChange
	}

	printVerbose("Watch configuration:")
	printVerbose("  Mode: %s", cfg.Generation.Mode)
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	if cfg.Watch.OnChange != "" {
		printVerbose("  On change: %s", cfg.Watch.OnChange)
	}
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watchRecursive(watcher, path); err != nil {
			return err
		}
	}

	printInfo("Watching for changes in: %s", strings.Join(paths, ", "))
	printInfo("Press Ctrl+C to stop")

	// Initial generation
	regenerate(cfg, paths)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	debounce := time.Duration(cfg.Watch.Debounce) * time.Millisecond
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantChange(event) {
				continue
			}
			printVerbose("Changed: %s", event.Name)

			// New directories need to be watched too
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchRecursive(watcher, event.Name)
				}
			}

			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-timerC:
			regenerate(cfg, paths)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError("watch error: %v", err)

		case <-interrupt:
			printInfo("Stopping watch")
			return nil
		}
	}
}

// watchRecursive adds a path and all its subdirectories to the watcher.
func watchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == "target" || name == ".git" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// relevantChange reports whether a file event should trigger regeneration.
func relevantChange(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	if ext == ".rs" || ext == ".toml" {
		return true
	}
	// Directory events carry no extension
	if ext == "" && event.Op.Has(fsnotify.Create) {
		return true
	}
	return false
}

// regenerate runs one generation pass, reporting but not propagating errors.
func regenerate(cfg *config.Config, paths []string) {
	start := time.Now()

	doc, err := generateDocument(cfg, paths)
	if err != nil {
		printError("generation failed: %v", err)
		return
	}

	if err := openapi.NewWriter().WriteFile(doc, cfg.Output, cfg.Format); err != nil {
		printError("failed to write spec: %v", err)
		return
	}

	printInfo("Regenerated %s in %s", cfg.Output, time.Since(start).Round(time.Millisecond))

	if cfg.Watch.OnChange != "" {
		runOnChange(cfg.Watch.OnChange)
	}
}

// runOnChange executes the configured post-generation command.
func runOnChange(command string) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		printError("on-change command failed: %v", err)
	}
}
