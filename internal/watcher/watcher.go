// Package watcher implements the drift watcher for a generated scaffold.
// It watches every directory of a layout and re-verifies the structure when
// the filesystem settles after a change, reporting scaffolds that no longer
// match their layout.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/omni-assistant/omni-scaffold/internal/layout"
	"github.com/omni-assistant/omni-scaffold/internal/verifier"
)

// Watcher re-verifies a scaffold whenever it changes on disk.
type Watcher struct {
	target   string
	lay      layout.Layout
	debounce time.Duration

	verifier verifier.Verifier

	log *slog.Logger
}

// New returns a Watcher for a layout applied under target.
// debounce is how long the filesystem must stay quiet after an event before
// the structure is re-verified.
func New(l *slog.Logger, target string, lay layout.Layout, debounce time.Duration) Watcher {
	return Watcher{
		target:   target,
		lay:      lay,
		debounce: debounce,

		verifier: verifier.New(l, target),

		log: l,
	}
}

// Watch verifies the scaffold, then watches it until the context is done.
//
// A report is emitted on the first channel whenever a re-verification finds
// the scaffold incomplete. Watch errors are emitted on the second channel.
// Both channels are closed when the watch stops. An incomplete scaffold, or
// one that cannot be watched, fails immediately instead of starting the watch.
func (w Watcher) Watch(ctx context.Context) (<-chan verifier.Report, <-chan error, error) {
	report, err := w.verifier.Run(ctx, w.lay)
	if err != nil {
		return nil, nil, err
	}
	if !report.OK() {
		return nil, nil, fmt.Errorf("scaffold is incomplete, %d directories and %d files are missing",
			len(report.MissingDirs), len(report.MissingFiles))
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("could not create filesystem watcher: %v", err)
	}

	if err := w.addWatches(fsWatcher); err != nil {
		_ = fsWatcher.Close()
		return nil, nil, err
	}

	reports := make(chan verifier.Report, 1)
	watchErrs := make(chan error, 1)
	go func() {
		defer close(reports)
		defer close(watchErrs)
		defer func() {
			if err := fsWatcher.Close(); err != nil {
				w.log.Warn("Failed to close filesystem watcher", "error", err)
			}
		}()
		w.watchLoop(ctx, fsWatcher, reports, watchErrs)
	}()

	return reports, watchErrs, nil
}

func (w Watcher) watchLoop(ctx context.Context, fsWatcher *fsnotify.Watcher, reports chan verifier.Report, watchErrs chan error) {
	quiet := time.NewTimer(w.debounce)
	if !quiet.Stop() {
		<-quiet.C
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			w.log.Debug("Filesystem event", "event", event)
			quiet.Reset(w.debounce)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("Filesystem watcher error", "error", err)
			sendLatest(watchErrs, err)

		case <-quiet.C:
			report, err := w.verifier.Run(ctx, w.lay)
			if err != nil {
				sendLatest(watchErrs, err)
				continue
			}

			// Directories may have been recreated since the last pass.
			if err := w.addWatches(fsWatcher); err != nil {
				w.log.Debug("Could not refresh watches", "error", err)
			}

			if report.OK() {
				w.log.Info("Scaffold matches its layout")
				continue
			}
			w.log.Warn("Scaffold no longer matches its layout",
				"missing_dirs", len(report.MissingDirs), "missing_files", len(report.MissingFiles))
			sendLatest(reports, report)
		}
	}
}

// addWatches watches every directory of the layout that currently exists.
func (w Watcher) addWatches(fsWatcher *fsnotify.Watcher) error {
	for _, dir := range w.lay.DirPaths() {
		path := filepath.Join(w.target, filepath.FromSlash(dir))
		if err := fsWatcher.Add(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("could not watch %s: %v", dir, err)
		}
	}
	return nil
}

// sendLatest delivers v without blocking, dropping the stale element if the
// channel buffer is full.
func sendLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
