package manager

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"anomalyd/internal/fetch"
	"anomalyd/internal/ledger"
)

// Ensure resolves name to a verified local file, downloading when needed.
// Concurrent calls for the same name are serialized; the second caller
// usually lands on the cache-hit path. onProgress may be nil.
func (m *Manager) Ensure(ctx context.Context, name string, force bool, onProgress func(fetch.Progress)) (fetch.Result, error) {
	lock := m.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	m.setInFlight(name, true)
	defer m.setInFlight(name, false)

	log.Printf("manager event=fetch_start weight=%q force=%v", name, force)
	startTs := time.Now()

	var opts []fetch.Option
	if force {
		opts = append(opts, fetch.WithForce())
	}
	if onProgress != nil {
		opts = append(opts, fetch.WithProgress(onProgress))
	}

	res, err := m.fetcher.Fetch(ctx, name, opts...)
	if err != nil {
		m.noteError(err)
		if fetch.IsIntegrity(err) {
			m.record(name, ledger.ActionVerifyFail, "", "", 0)
		}
		log.Printf("manager event=fetch_error weight=%q err=%v", name, err)
		return fetch.Result{}, err
	}

	if !res.Direct {
		filename := filepath.Base(res.Path)
		m.store.MarkVerified(filename, res.Checksum)
		if res.Cached {
			m.record(name, ledger.ActionCacheHit, res.Path, res.Checksum, res.Size)
		} else {
			if res.Redownloaded {
				m.record(name, ledger.ActionCorruptRedownload, res.Path, "", 0)
			}
			m.record(name, ledger.ActionDownload, res.Path, res.Checksum, res.Size)
			m.record(name, ledger.ActionVerifyOK, res.Path, res.Checksum, res.Size)
		}
	}

	m.mu.Lock()
	m.fetches++
	m.lastError = ""
	m.mu.Unlock()

	log.Printf("manager event=fetch_ready weight=%q cached=%v dur_ms=%d", name, res.Cached, time.Since(startTs)/time.Millisecond)
	return res, nil
}

// record journals a ledger event. Journal writes use a background context so
// a canceled request cannot lose its own audit trail; failures are logged and
// never fail the operation.
func (m *Manager) record(name, action, path, checksum string, sizeBytes int64) {
	if err := m.ledger.Record(context.Background(), name, action, path, checksum, sizeBytes); err != nil {
		log.Printf("manager event=ledger_error action=%s weight=%q err=%v", action, name, err)
	}
}
