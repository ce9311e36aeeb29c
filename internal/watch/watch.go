// Package watch re-runs a callback when any of a set of files changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is used when Options.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

// Options configures Run.
type Options struct {
	// Paths are the files to watch.
	Paths []string
	// Debounce is how long the files must stay quiet before onChange runs.
	Debounce time.Duration
	// Logger receives watcher activity. Nil means zap.NewNop().
	Logger *zap.Logger
}

// Run watches opts.Paths and calls onChange once the files have been quiet
// for opts.Debounce after a change. It blocks until ctx is done and returns
// only after its goroutines have exited. An error from onChange is logged
// and watching goes on.
//
// The parent directories are watched rather than the files themselves, so
// files replaced by renaming over them keep being tracked.
func Run(ctx context.Context, opts Options, onChange func(ctx context.Context) error) error {
	if len(opts.Paths) == 0 {
		return errors.New("watch: no paths")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	targets, dirs, err := resolve(opts.Paths)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch: failed to watch %s: %w", dir, err)
		}
	}

	logger.Info("watching files",
		zap.Strings("paths", opts.Paths),
		zap.Duration("debounce", debounce),
	)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
		} else {
			timer.Reset(debounce)
		}

		timerC = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return nil
		case <-timerC:
			timerC = nil

			if err := onChange(ctx); err != nil {
				logger.Warn("change handler failed", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Warn("watcher error", zap.Error(err))
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !shouldTrigger(evt, targets) {
				continue
			}

			logger.Debug("file changed", zap.String("path", evt.Name), zap.Stringer("op", evt.Op))
			resetTimer()
		}
	}
}

// resolve returns the cleaned absolute paths to watch and their distinct
// parent directories.
func resolve(paths []string) (map[string]struct{}, []string, error) {
	targets := make(map[string]struct{}, len(paths))
	seenDirs := make(map[string]struct{}, len(paths))

	var dirs []string

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, nil, fmt.Errorf("watch: failed to resolve %s: %w", p, err)
		}

		targets[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := seenDirs[dir]; !ok {
			seenDirs[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	return targets, dirs, nil
}

func shouldTrigger(evt fsnotify.Event, targets map[string]struct{}) bool {
	if evt.Name == "" {
		return false
	}

	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	abs, err := filepath.Abs(evt.Name)
	if err != nil {
		return false
	}

	_, ok := targets[abs]

	return ok
}
