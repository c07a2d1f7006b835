package manager

import (
	"context"
	"log"
	"sort"
	"time"

	"anomalyd/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status(ctx context.Context) types.StatusResponse {
	snap := m.registry.Snapshot()

	var cachedFiles int
	var cacheBytes int64
	if items, err := m.store.List(); err == nil {
		cachedFiles = len(items)
		for _, it := range items {
			cacheBytes += it.SizeBytes
		}
	}

	counts, err := m.ledger.CountsByAction(ctx)
	if err != nil {
		log.Printf("manager event=ledger_error action=counts err=%v", err)
	}

	m.mu.Lock()
	inFlight := make([]string, 0, len(m.inFlight))
	for n := range m.inFlight {
		inFlight = append(inFlight, n)
	}
	lastError := m.lastError
	fetches := m.fetches
	evictions := m.evictions
	m.mu.Unlock()
	sort.Strings(inFlight)

	return types.StatusResponse{
		WeightsDir:      m.store.Dir(),
		RegistryEntries: snap.Len(),
		CachedFiles:     cachedFiles,
		CacheBytes:      cacheBytes,
		InFlight:        inFlight,
		EventCounts:     counts,
		FetchesTotal:    fetches,
		EvictionsTotal:  evictions,
		RegistryReloads: m.registry.ReloadCount(),
		LastError:       lastError,
		UptimeSeconds:   int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix:  time.Now().Unix(),
	}
}

// History returns recent ledger events, newest first.
func (m *Manager) History(ctx context.Context, limit int) ([]types.FetchEvent, error) {
	return m.ledger.Recent(ctx, limit)
}
