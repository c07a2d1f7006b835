package manager

import (
	"context"
	"errors"
	"log"
	"os"

	"anomalyd/internal/fetch"
	"anomalyd/internal/ledger"
)

// Evict removes the cached artifact for name. name may be a registry name or
// a bare cache file name. Returns the evicted file name.
func (m *Manager) Evict(ctx context.Context, name string) (string, error) {
	snap := m.registry.Snapshot()
	filename := name
	if e, ok := snap.Lookup(name); ok {
		filename = e.Filename
	}

	// Hold the name lock so an eviction cannot race a fetch onto the same file.
	lock := m.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	if err := m.store.Remove(filename); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if _, known := snap.Lookup(name); known {
				return "", ErrNotCached(name)
			}
			return "", fetch.ErrNotFound(name, snap.Names())
		}
		m.noteError(err)
		return "", err
	}

	m.record(name, ledger.ActionEvict, m.store.Path(filename), "", 0)
	m.mu.Lock()
	m.evictions++
	m.mu.Unlock()
	log.Printf("manager event=evict weight=%q file=%s", name, filename)
	return filename, nil
}
