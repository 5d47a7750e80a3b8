package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ManifestWatcher reloads a deck's clip lengths when the manifest file changes
type ManifestWatcher struct {
	path     string
	deck     *Deck
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	running bool
	reloads int
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewManifestWatcher watches the directory holding path. Editors often
// replace files by rename, so the file itself is not watched.
func NewManifestWatcher(path string, deck *Deck, logger *zap.Logger) (*ManifestWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &ManifestWatcher{
		path:     filepath.Clean(path),
		deck:     deck,
		logger:   logger,
		watcher:  watcher,
		debounce: 200 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching in a goroutine
func (mw *ManifestWatcher) Start(ctx context.Context) error {
	mw.mu.Lock()
	if mw.running {
		mw.mu.Unlock()
		return nil
	}
	mw.running = true
	mw.mu.Unlock()

	if err := mw.watcher.Add(filepath.Dir(mw.path)); err != nil {
		mw.mu.Lock()
		mw.running = false
		mw.mu.Unlock()
		return fmt.Errorf("failed to watch manifest: %w", err)
	}
	mw.logger.Debug("Watching manifest", zap.String("path", mw.path))

	go mw.run(ctx)
	return nil
}

// Stop ends the watch and waits for the loop to exit
func (mw *ManifestWatcher) Stop() {
	mw.mu.Lock()
	if !mw.running {
		mw.mu.Unlock()
		_ = mw.watcher.Close()
		return
	}
	mw.running = false
	mw.mu.Unlock()

	close(mw.stopCh)
	<-mw.doneCh

	if err := mw.watcher.Close(); err != nil {
		mw.logger.Warn("Failed to close manifest watcher", zap.Error(err))
	}
}

// Reloads counts successful reloads
func (mw *ManifestWatcher) Reloads() int {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.reloads
}

func (mw *ManifestWatcher) run(ctx context.Context) {
	defer close(mw.doneCh)

	// nil channel until a change arrives; a burst of writes reloads once
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-mw.stopCh:
			return

		case event, ok := <-mw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != mw.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(mw.debounce)

		case err, ok := <-mw.watcher.Errors:
			if !ok {
				return
			}
			mw.logger.Warn("Manifest watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			mw.reload()
		}
	}
}

func (mw *ManifestWatcher) reload() {
	lengths, err := LoadManifest(mw.path)
	if err != nil {
		// keep playing with the last good manifest
		mw.logger.Warn("Ignoring manifest change", zap.String("path", mw.path), zap.Error(err))
		return
	}
	mw.deck.SetLengths(lengths)

	mw.mu.Lock()
	mw.reloads++
	mw.mu.Unlock()
	mw.logger.Info("Manifest reloaded", zap.Int("clips", len(lengths)))
}
