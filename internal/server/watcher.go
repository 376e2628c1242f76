package server

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch monitors the input file for changes and triggers a refresh after the
// debounce window. The parent directory is watched rather than the file
// itself so that editors which replace files atomically (write to temp,
// rename over the original) keep triggering events.
func (s *Server) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.opts.Input)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go s.watchLoop(ctx, watcher)
	return nil
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	base := filepath.Base(s.opts.Input)
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !s.relevant(event, base) {
				continue
			}
			s.logger.Debug("file event", "op", event.Op.String(), "name", event.Name)

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(s.opts.Debounce, func() {
				s.refresh(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", "err", err)
		}
	}
}

// relevant reports whether event concerns the watched file. Chmod-only
// events are dropped; they fire on every stat touch and carry no content
// change.
func (s *Server) relevant(event fsnotify.Event, base string) bool {
	if filepath.Base(event.Name) != base {
		return false
	}
	if event.Op == fsnotify.Chmod {
		return false
	}
	return true
}
