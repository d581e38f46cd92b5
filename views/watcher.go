package views

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch rebuilds the cache whenever a file under one of the scan roots of
// webroot changes on disk. It complements development mode: the miss-driven
// rescan covers newly added URLs, the watcher covers renamed or removed
// files that would otherwise keep serving stale mappings.
//
// Watch blocks until ctx is done. Run it in its own goroutine.
func (c *Cache) Watch(ctx context.Context, webroot string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range c.roots {
		dir := filepath.Join(webroot, filepath.FromSlash(strings.Trim(root.Path, "/")))
		// Absent roots are tolerated, same as in the scanner.
		_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return filepath.SkipDir
			}
			if d.IsDir() {
				return watcher.Add(p)
			}
			return nil
		})
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				if event.Op.Has(fsnotify.Create) {
					// New subdirectories need their own watch.
					_ = watcher.Add(event.Name)
				}
				c.log.Debug("view change detected", slog.String("path", event.Name))
				c.Rebuild()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Warn("view watcher error", slog.Any("error", err))
		}
	}
}
