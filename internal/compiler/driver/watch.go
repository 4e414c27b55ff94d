package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/mdwloc/foundation/core/error"
	"github.com/msto63/mdwloc/internal/compiler/model"
)

// DefaultDebounce is the quiet period after the last change before a run.
const DefaultDebounce = 300 * time.Millisecond

// Watch re-runs generation for root whenever a definition document below
// it changes and hands every batch of results to onRun. It blocks until ctx
// is done.
func (d *Driver) Watch(ctx context.Context, root string, onRun func([]Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create watcher").
			WithCode(mdwerror.CodeIOError).
			WithOperation("driver.Watch")
	}
	defer watcher.Close()

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && isHidden(entry.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return mdwerror.Wrap(err, "failed to watch directory").
			WithCode(mdwerror.CodeIOError).
			WithOperation("driver.Watch").
			WithDetail("root", root)
	}

	debounce := d.cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	d.logger.Info("Started watching for definition changes", "dir", root)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Stopping watcher (context cancelled)")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !isHidden(info.Name()) {
					if err := watcher.Add(event.Name); err != nil {
						d.logger.Warn("Failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}

			if !model.IsDocument(filepath.Base(event.Name)) || event.Op == fsnotify.Chmod {
				continue
			}

			d.logger.Debug("Definition changed", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			fire = nil

			docs, err := Discover(root)
			if err != nil {
				d.logger.Error("Discovery failed", "dir", root, "error", err)
				continue
			}
			onRun(d.Run(ctx, docs))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.logger.Error("Watcher error", "error", err)
		}
	}
}
