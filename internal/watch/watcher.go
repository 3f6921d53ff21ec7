// Package watch reports new or changed entries under a directory tree whose
// names need cleaning, coalescing bursts of filesystem events into batches.
package watch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change that put an entry into a batch.
type Op int

const (
	// Created covers new entries, including entries moved into the tree.
	Created Op = iota
	// Written is a write to an existing file.
	Written
)

// String returns a human-readable representation of the operation
func (op Op) String() string {
	switch op {
	case Created:
		return "created"
	case Written:
		return "written"
	default:
		return "unknown"
	}
}

// Event is one entry that changed and whose name matched.
type Event struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

// DefaultQuietPeriod is how long the tree must stay quiet before a batch is
// delivered. Downloads and copies write in bursts; waiting lets them finish.
const DefaultQuietPeriod = 2 * time.Second

// Watcher watches a directory tree and delivers batches of matching events
// once no new event has arrived for the quiet period.
type Watcher struct {
	watcher *fsnotify.Watcher
	batches chan []Event
	errors  chan error
	done    chan struct{}
	root    string
	match   func(name string) bool

	mu          sync.Mutex
	quietPeriod time.Duration
	pending     []Event
	seen        map[string]bool
	timer       *time.Timer
	closed      bool
}

// New watches root and every directory below it. match is called with the
// basename of each changed entry; nil matches everything.
func New(root string, match func(name string) bool) (*Watcher, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:     fw,
		batches:     make(chan []Event, 8),
		errors:      make(chan error, 10),
		done:        make(chan struct{}),
		root:        filepath.Clean(root),
		match:       match,
		quietPeriod: DefaultQuietPeriod,
		seen:        make(map[string]bool),
	}

	if err := w.addRecursive(w.root); err != nil {
		fw.Close()
		return nil, err
	}

	go w.processEvents()

	return w, nil
}

// addRecursive adds the directory and all its subdirectories to the watcher
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Vanished or unreadable directories are skipped; the root
			// itself must be watchable.
			if path != w.root && (errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			if path != w.root && errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}
		return nil
	})
}

// Rewatch drops every watch and walks the tree again. Call it after
// directories under the root were renamed so later events carry the new
// paths.
func (w *Watcher) Rewatch() error {
	for _, p := range w.watcher.WatchList() {
		_ = w.watcher.Remove(p)
	}
	return w.addRecursive(w.root)
}

// processEvents processes fsnotify events until Close
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// handleEvent processes a single fsnotify event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	var op Op
	switch {
	case event.Has(fsnotify.Create):
		op = Created
		// New directories may arrive with content already inside.
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addRecursive(path); err != nil {
				w.sendError(err)
			}
			w.queueTree(path)
		}
	case event.Has(fsnotify.Write):
		op = Written
	default:
		// Removals, renames away and chmod never need cleaning.
		return
	}

	if w.matches(path) {
		w.queue(Event{Path: path, Op: op, Timestamp: time.Now()})
	}
}

// queueTree queues every matching entry below a directory that appeared
// with content, since no create event is emitted for it.
func (w *Watcher) queueTree(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == dir {
			return nil
		}
		if w.matches(path) {
			w.queue(Event{Path: path, Op: Created, Timestamp: time.Now()})
		}
		return nil
	})
}

func (w *Watcher) matches(path string) bool {
	if w.match == nil {
		return true
	}
	return w.match(filepath.Base(path))
}

// queue adds an event to the pending batch and restarts the quiet timer.
// Repeated events for the same path keep only the first.
func (w *Watcher) queue(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if !w.seen[ev.Path] {
		w.seen[ev.Path] = true
		w.pending = append(w.pending, ev)
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.quietPeriod, w.flush)
}

// flush delivers the pending batch
func (w *Watcher) flush() {
	w.mu.Lock()
	if w.closed || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := w.pending
	w.pending = nil
	w.seen = make(map[string]bool)
	w.timer = nil
	w.mu.Unlock()

	select {
	case w.batches <- batch:
	case <-w.done:
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
		// Error channel full, drop the error
	}
}

// Batches returns the channel of coalesced event batches
func (w *Watcher) Batches() <-chan []Event {
	return w.batches
}

// Errors returns the channel for receiving errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Root returns the absolute root directory being watched
func (w *Watcher) Root() string {
	return w.root
}

// SetQuietPeriod sets how long the tree must stay quiet before a batch is
// delivered. It applies to timers started after the call.
func (w *Watcher) SetQuietPeriod(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.quietPeriod = d
}

// Close stops the watcher and releases resources
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = nil
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}
