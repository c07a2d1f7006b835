package registry

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher hot-reloads the registry when any of its source files change.
// A failed reload keeps the last good snapshot.
type Watcher struct {
	paths    []string
	onReload func(*Registry, error)

	mu      sync.RWMutex
	current *Registry

	reloads atomic.Uint64
	done    chan struct{}
	once    sync.Once
}

// NewWatcher loads the registry from the builtin table plus paths and starts
// watching paths for changes. onReload may be nil.
func NewWatcher(paths []string, onReload func(*Registry, error)) (*Watcher, error) {
	reg, err := LoadFiles(paths...)
	if err != nil {
		return nil, fmt.Errorf("initial registry load: %w", err)
	}
	w := &Watcher{
		paths:    paths,
		onReload: onReload,
		current:  reg,
		done:     make(chan struct{}),
	}
	if len(paths) > 0 {
		fw, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("fsnotify: %w", err)
		}
		for _, p := range paths {
			if err := fw.Add(p); err != nil {
				_ = fw.Close()
				return nil, fmt.Errorf("watch %s: %w", p, err)
			}
		}
		go w.loop(fw)
	}
	return w, nil
}

// Snapshot returns the current registry.
func (w *Watcher) Snapshot() *Registry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// ReloadCount returns the number of completed reloads (successful or not).
func (w *Watcher) ReloadCount() uint64 { return w.reloads.Load() }

// Lookup resolves name against the current snapshot.
func (w *Watcher) Lookup(name string) (Entry, bool) { return w.Snapshot().Lookup(name) }

// Names lists the names in the current snapshot, sorted.
func (w *Watcher) Names() []string { return w.Snapshot().Names() }

// Close stops the watch loop. Safe to call more than once.
func (w *Watcher) Close() {
	w.once.Do(func() { close(w.done) })
}

func (w *Watcher) loop(fw *fsnotify.Watcher) {
	defer fw.Close()

	var timer *time.Timer
	const debounce = 500 * time.Millisecond

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			// Editors often replace the file, which arrives as Create or
			// Rename rather than Write.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, w.reload)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			log.Printf("registry event=watch_error err=%v", err)
		}
	}
}

func (w *Watcher) reload() {
	count := w.reloads.Add(1)
	reg, err := LoadFiles(w.paths...)
	if err != nil {
		log.Printf("registry event=reload_failed count=%d err=%v", count, err)
		if w.onReload != nil {
			w.onReload(nil, err)
		}
		return
	}
	w.mu.Lock()
	w.current = reg
	w.mu.Unlock()
	log.Printf("registry event=reloaded count=%d entries=%d", count, reg.Len())
	if w.onReload != nil {
		w.onReload(reg, nil)
	}
}
