package favorites

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mmcdole/flicks/internal/debounce"
	"github.com/mmcdole/flicks/internal/notify"
)

// Watch publishes notify.TopicStorage whenever another process writes the
// favorites database. Bursts of file events are coalesced, and writes made
// by this store are recognised by the writer id stored next to the
// collection. Watching stops when ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil // Memory-only mode
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// bbolt may replace the file, so watch the directory
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(s.path), err)
	}

	changes := make(chan struct{})
	settled := debounce.Stream(ctx, debounce.RealClock{}, changes, s.coalesce)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != s.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				select {
				case changes <- struct{}{}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("favorites watcher error", "error", err)
			}
		}
	}()

	go func() {
		for range settled {
			s.checkForeignWrite()
		}
	}()

	s.logger.Debug("watching favorites", "path", s.path)
	return nil
}

// checkForeignWrite publishes a storage change unless this store wrote last
func (s *Store) checkForeignWrite() {
	s.mu.Lock()
	writer, err := s.backend.lastWriter()
	own := ""
	if b, ok := s.backend.(*boltBackend); ok {
		own = b.writerID
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Debug("failed to read favorites writer", "error", err)
		return
	}
	if writer == "" || writer == own {
		return
	}
	s.logger.Debug("favorites changed by another process", "writer", writer)
	s.bus.Publish(notify.TopicStorage)
}
