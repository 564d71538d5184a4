// Package index maintains the list of candidate files beneath a root
// directory. A filesystem watcher keeps the list current; consumers read
// immutable snapshots.
package index

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomfield/quickpick/internal/logging"
	"github.com/atomfield/quickpick/internal/logging/events"
)

// maxFiles caps the index so a scan of an enormous tree cannot exhaust
// memory; quick-open over more entries than this is not useful anyway.
const maxFiles = 200000

var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
}

// Event signals that the index changed, or that refreshing it failed.
type Event struct {
	Files int
	Err   error
}

// Index holds the scanned file list and refreshes it when the watched
// tree changes.
type Index struct {
	root          string
	includeHidden bool

	mu    sync.RWMutex
	paths []string

	watcher *fsnotify.Watcher
	events  chan Event
	trigger chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New scans root synchronously and starts the change watcher. Root must be
// an absolute path.
func New(root string, includeHidden bool) (*Index, error) {
	ctx, cancel := context.WithCancel(context.Background())
	ix := &Index{
		root:          root,
		includeHidden: includeHidden,
		events:        make(chan Event, 16),
		trigger:       make(chan struct{}, 1),
		ctx:           ctx,
		cancel:        cancel,
	}

	dirs, err := ix.scan()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	ix.watcher = watcher
	ix.watchDirs(dirs)

	ix.wg.Add(2)
	go ix.watchLoop()
	go ix.rescanLoop()
	go func() {
		ix.wg.Wait()
		close(ix.events)
	}()

	return ix, nil
}

// Root returns the indexed root directory.
func (ix *Index) Root() string {
	return ix.root
}

// Snapshot returns a copy of the current file list, as slash-separated
// paths relative to the root.
func (ix *Index) Snapshot() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]string, len(ix.paths))
	copy(out, ix.paths)
	return out
}

// Events returns the channel of index-change notifications.
func (ix *Index) Events() <-chan Event {
	return ix.events
}

// Stop cancels the watcher goroutines.
func (ix *Index) Stop() {
	ix.cancel()
	if ix.watcher != nil {
		ix.watcher.Close()
	}
}

// Wait blocks until the watcher goroutines have exited and the events
// channel is closed. Call after Stop when a clean drain is required.
func (ix *Index) Wait() {
	ix.wg.Wait()
}

// Rescan walks the tree again and replaces the snapshot.
func (ix *Index) Rescan() error {
	dirs, err := ix.scan()
	if err != nil {
		return err
	}
	ix.watchDirs(dirs)
	return nil
}

// scan walks the root, replaces the path snapshot, and returns the
// directories encountered so they can be (re)watched.
func (ix *Index) scan() ([]string, error) {
	start := time.Now()
	var paths []string
	var dirs []string
	err := filepath.WalkDir(ix.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			logging.Error(err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != ix.root {
				if _, skip := skipDirs[name]; skip {
					return filepath.SkipDir
				}
				if !ix.includeHidden && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
			}
			dirs = append(dirs, path)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !ix.includeHidden && strings.HasPrefix(name, ".") {
			return nil
		}
		rel, relErr := filepath.Rel(ix.root, path)
		if relErr != nil {
			return nil
		}
		paths = append(paths, filepath.ToSlash(rel))
		if len(paths) >= maxFiles {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	ix.mu.Lock()
	ix.paths = paths
	ix.mu.Unlock()

	events.Index.Scan(ix.root, len(paths), time.Since(start))
	return dirs, nil
}

func (ix *Index) watchDirs(dirs []string) {
	if ix.watcher == nil {
		return
	}
	for _, dir := range dirs {
		if err := ix.watcher.Add(dir); err != nil {
			events.Index.WatchError(err)
		}
	}
}

// watchLoop coalesces raw filesystem events into rescan triggers.
func (ix *Index) watchLoop() {
	defer ix.wg.Done()
	for {
		select {
		case <-ix.ctx.Done():
			return
		case _, ok := <-ix.watcher.Events:
			if !ok {
				return
			}
			select {
			case ix.trigger <- struct{}{}:
			default:
			}
		case err, ok := <-ix.watcher.Errors:
			if !ok {
				return
			}
			events.Index.WatchError(err)
		}
	}
}

// rescanLoop services triggers with a throttle so edit bursts produce one
// rescan, then publishes the result.
func (ix *Index) rescanLoop() {
	defer ix.wg.Done()
	throttle := newThrottle(500 * time.Millisecond)
	for {
		select {
		case <-ix.ctx.Done():
			return
		case <-ix.trigger:
			throttle.wait()
			err := ix.Rescan()
			evt := Event{Files: len(ix.Snapshot()), Err: err}
			select {
			case <-ix.ctx.Done():
				return
			case ix.events <- evt:
			}
		}
	}
}
