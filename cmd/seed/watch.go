package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/seedbed-dev/seedbed/internal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewWatchCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report seed record churn as it happens",
		Long:  `Watch the seeds tree and print one line per settled batch of changes, for statusline-style collaborators.`,
		RunE:  makeWatchRunner(logger),
	}

	cmd.Flags().Duration("debounce", 500*time.Millisecond, "Debounce window for batching changes")
	return cmd
}

func makeWatchRunner(logger *zap.Logger) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		debounce, _ := cmd.Flags().GetDuration("debounce")

		root := internal.Root{Base: resolveBase(cmd)}
		seedsDir := root.SeedsDir()
		if err := os.MkdirAll(seedsDir, 0755); err != nil {
			return fmt.Errorf("create seeds directory: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		if err := addWatchDirs(watcher, seedsDir); err != nil {
			return fmt.Errorf("add watch dirs: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes...\n", seedsDir)

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := map[string]struct{}{}

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if shouldIgnoreEvent(event) {
					continue
				}
				// A created namespace directory needs its own watch.
				if event.Op&fsnotify.Create != 0 {
					if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
						if addErr := watcher.Add(event.Name); addErr != nil {
							logger.Warn("watch new namespace", zap.String("dir", event.Name), zap.Error(addErr))
						}
						continue
					}
				}
				if len(pending) == 0 {
					timer.Reset(debounce)
				}
				pending[filepath.Base(event.Name)] = struct{}{}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watch error", zap.Error(err))
			case <-timer.C:
				fmt.Fprintf(cmd.OutOrStdout(), "%d seed record(s) changed\n", len(pending))
				pending = map[string]struct{}{}
			}
		}
	}
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func shouldIgnoreEvent(event fsnotify.Event) bool {
	// Atomic-replace temp files settle into renames of the real record.
	if strings.HasSuffix(event.Name, ".tmp") {
		return true
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0
}
