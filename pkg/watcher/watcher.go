// Package watcher re-triggers anonymization runs when the input graph file
// changes on disk (web mode only).
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/privgraph/graphanon/pkg/logging"
)

// ChangeEvent reports that the watched file was modified.
type ChangeEvent struct {
	Path      string
	Timestamp time.Time
}

// FileWatcher watches one input file for writes. The parent directory is
// watched rather than the file itself, so editors that replace the file by
// rename are still observed.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan ChangeEvent
}

// NewFileWatcher creates a watcher for path.
func NewFileWatcher(path string) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("resolving watch path: %w", err)
	}
	return &FileWatcher{
		watcher: w,
		path:    abs,
		events:  make(chan ChangeEvent, 16),
	}, nil
}

// Start begins watching. Events are delivered until ctx is cancelled.
func (fw *FileWatcher) Start(ctx context.Context) error {
	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(fw.path), err)
	}
	logging.Info("watching input file", "path", fw.path)
	go fw.run(ctx)
	return nil
}

func (fw *FileWatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			fw.watcher.Close()
			close(fw.events)
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				close(fw.events)
				return
			}
			if !sameFile(event.Name, fw.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case fw.events <- ChangeEvent{Path: fw.path, Timestamp: time.Now()}:
			default:
				// A change is already pending; coalescing is fine.
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				close(fw.events)
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// Events returns the channel of raw change events.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

func sameFile(a, b string) bool {
	abs, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	return abs == b
}
