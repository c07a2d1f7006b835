package manager

import (
	"sync"
	"time"

	"anomalyd/internal/common/fsutil"
	"anomalyd/internal/fetch"
	"anomalyd/internal/ledger"
	"anomalyd/internal/registry"
	"anomalyd/internal/store"
)

// RegistrySource supplies the current registry snapshot. *registry.Watcher
// satisfies it.
type RegistrySource interface {
	Snapshot() *registry.Registry
	ReloadCount() uint64
}

// Config encapsulates the collaborators for Manager construction.
type Config struct {
	Registry RegistrySource
	Fetcher  *fetch.Fetcher
	Store    *store.Store
	// Ledger may be nil; a disabled ledger is substituted.
	Ledger *ledger.Ledger
}

type Manager struct {
	registry RegistrySource
	fetcher  *fetch.Fetcher
	store    *store.Store
	ledger   *ledger.Ledger

	mu        sync.Mutex
	nameLocks map[string]*sync.Mutex
	inFlight  map[string]struct{}
	lastError string
	fetches   uint64
	evictions uint64

	startTime time.Time
}

// New constructs a Manager.
func New(cfg Config) *Manager {
	l := cfg.Ledger
	if l == nil {
		l = ledger.Disabled()
	}
	return &Manager{
		registry:  cfg.Registry,
		fetcher:   cfg.Fetcher,
		store:     cfg.Store,
		ledger:    l,
		nameLocks: make(map[string]*sync.Mutex),
		inFlight:  make(map[string]struct{}),
		startTime: time.Now(),
	}
}

// Ready reports whether the cache directory is usable.
func (m *Manager) Ready() bool {
	return fsutil.PathExists(m.store.Dir())
}

// WeightsDir returns the cache directory.
func (m *Manager) WeightsDir() string { return m.store.Dir() }

// Close releases the ledger.
func (m *Manager) Close() error { return m.ledger.Close() }

// lockFor returns the per-name mutex, creating it on first use. Serializing
// same-name fetches keeps two downloads from racing onto one target file.
func (m *Manager) lockFor(name string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.nameLocks[name]
	if !ok {
		l = &sync.Mutex{}
		m.nameLocks[name] = l
	}
	return l
}

func (m *Manager) setInFlight(name string, active bool) {
	m.mu.Lock()
	if active {
		m.inFlight[name] = struct{}{}
	} else {
		delete(m.inFlight, name)
	}
	m.mu.Unlock()
}

func (m *Manager) noteError(err error) {
	m.mu.Lock()
	m.lastError = err.Error()
	m.mu.Unlock()
}
