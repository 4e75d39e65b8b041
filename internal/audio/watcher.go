package audio

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ChimeWatcher watches the configured chime file and invalidates the
// player's decoded cache when it changes, so the user can swap the sound
// without restarting.
type ChimeWatcher struct {
	watcher  *fsnotify.Watcher
	player   *Player
	filePath string
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewChimeWatcher creates a watcher for the player's chime file.
func NewChimeWatcher(player *Player, filePath string) (*ChimeWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &ChimeWatcher{
		watcher:  watcher,
		player:   player,
		filePath: filePath,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching the file for changes.
func (cw *ChimeWatcher) Start() error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = true
	cw.mu.Unlock()

	// Watch the directory containing the file (more reliable for writes)
	dir := filepath.Dir(cw.filePath)
	if err := cw.watcher.Add(dir); err != nil {
		return err
	}

	go cw.watch()
	return nil
}

// watch is the main watch loop.
func (cw *ChimeWatcher) watch() {
	filename := filepath.Base(cw.filePath)

	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}

			// Only care about our file
			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				slog.Debug("chime file changed, invalidating cache", "file", cw.filePath)
				cw.player.InvalidateChime(cw.filePath)
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("chime watcher error", "error", err)

		case <-cw.done:
			return
		}
	}
}

// Stop stops the watcher.
func (cw *ChimeWatcher) Stop() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.running {
		return nil
	}

	cw.running = false
	close(cw.done)
	return cw.watcher.Close()
}
