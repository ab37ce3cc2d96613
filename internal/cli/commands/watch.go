package commands

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of writes from editors into one re-parse.
const watchDebounce = 100 * time.Millisecond

// watchAndParse runs parse once, then again after every change to paths,
// until ctx is cancelled. Parse failures are reported and do not stop the loop.
func watchAndParse(ctx context.Context, cc *CommandContext, paths []string, parse func(context.Context) error) error {
	r := cc.Renderer
	runOnce := func() {
		if err := parse(ctx); err != nil {
			r.Status("Error: %v", err)
		}
		r.Status("watching %s (Ctrl+C to stop)", strings.Join(paths, ", "))
	}

	runOnce()
	return watchLoop(ctx, cc.Logger, paths, runOnce)
}

// watchLoop calls onChange, debounced, whenever a watched SQL file is
// written or created. Files are watched through their parent directory
// so that editors that replace files on save are still seen. Directories
// created below a watched directory are watched as they appear.
func watchLoop(ctx context.Context, logger *slog.Logger, paths []string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	files := make(map[string]bool)
	var dirs []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := watchDirRecursive(watcher, p); err != nil {
				return err
			}
			dirs = append(dirs, filepath.Clean(p))
			continue
		}
		files[filepath.Clean(p)] = true
		if err := watcher.Add(filepath.Dir(p)); err != nil {
			return err
		}
	}

	underDir := func(name string) bool {
		for _, d := range dirs {
			if rel, err := filepath.Rel(d, name); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				return true
			}
		}
		return false
	}
	relevant := func(name string) bool {
		if files[filepath.Clean(name)] {
			return true
		}
		return isSQLFile(name) && underDir(name)
	}

	trigger := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()
	schedule := func(name string) {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		debounceTimer = time.AfterFunc(watchDebounce, func() {
			logger.Debug("file changed, re-parsing", "file", name)
			select {
			case trigger <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if event.Has(fsnotify.Create) && underDir(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchDirRecursive(watcher, event.Name); err != nil {
						logger.Error("failed to watch directory", "dir", event.Name, "error", err)
					}
					// Files may land in the directory before it is watched.
					if hasSQLFiles(event.Name) {
						schedule(event.Name)
					}
					continue
				}
			}
			if relevant(event.Name) {
				schedule(event.Name)
			}

		case <-trigger:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

func isSQLFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".sql")
}

// hasSQLFiles reports whether dir holds a .sql file at any depth.
func hasSQLFiles(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && isSQLFile(path) {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
