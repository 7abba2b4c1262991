package glossary

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Store whenever its glossary file changes on disk.
type Watcher struct {
	store  *Store
	target string
	fsw    *fsnotify.Watcher
}

// NewWatcher starts watching path for s. The parent directory is watched
// so that editors which save by rename are noticed too.
func NewWatcher(s *Store, path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("glossary: create watcher: %w", err)
	}

	target := filepath.Clean(path)
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		fsw.Close() //nolint:errcheck
		return nil, fmt.Errorf("glossary: watch %s: %w", path, err)
	}
	return &Watcher{store: s, target: target, fsw: fsw}, nil
}

// Run reloads the store on every write or create of the watched file until
// ctx is done. It closes the underlying watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close() //nolint:errcheck

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.store.logger.Debug("glossary file changed", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			w.store.Load(ctx)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.store.logger.Warn("glossary watcher error", slog.Any("error", err))
		}
	}
}
