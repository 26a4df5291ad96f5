package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"digital.vasic.corespec/pkg/logging"
	"digital.vasic.corespec/pkg/registry"
)

// watchDebounce is how long the watcher waits after the last
// change before triggering.
const watchDebounce = 500 * time.Millisecond

// Watcher triggers a callback when declaration files change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   logging.Logger
	paths    []string
	debounce time.Duration
}

// NewWatcher watches paths. Files are watched through their
// directory so that editors replacing the file are noticed.
func NewWatcher(paths []string, logger logging.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	seen := make(map[string]bool)
	var watched []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("declaration path: %w", err)
		}
		dir := p
		if !info.IsDir() {
			dir = filepath.Dir(p)
		}
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %q: %w", dir, err)
		}
		watched = append(watched, dir)
	}

	return &Watcher{
		watcher:  watcher,
		logger:   logger,
		paths:    watched,
		debounce: watchDebounce,
	}, nil
}

// Paths returns the watched directories.
func (w *Watcher) Paths() []string {
	return w.paths
}

// Run calls onChange after declaration files stop changing for
// the debounce period. onChange runs on the calling goroutine,
// so runs never overlap. Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	fire := make(chan struct{}, 1)
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !registry.IsDeclarationFile(event.Name) ||
				!event.Has(fsnotify.Write|fsnotify.Create|
					fsnotify.Remove|fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher_error", logging.ErrorField(err))
		}
	}
}

// watch runs once, then again after every change until ctx is
// cancelled. Failing runs are reported and do not stop the
// loop.
func (s *session) watch(ctx context.Context) error {
	if len(s.cfg.Paths) == 0 {
		return NewExitError(ExitCommandError,
			"--watch requires declaration paths")
	}
	w, err := NewWatcher(s.cfg.Paths, s.logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "watch", err)
	}

	s.runWatched(ctx)
	return w.Run(ctx, func() {
		fmt.Fprintln(s.errOut, "\nDeclarations changed, re-running...")
		s.runWatched(ctx)
	})
}

func (s *session) runWatched(ctx context.Context) {
	if err := s.run(ctx); err != nil {
		fmt.Fprintln(s.errOut, "Error:", err)
	}
}
