package manager

import (
	"context"
	"log"

	"anomalyd/internal/fetch"
	"anomalyd/internal/ledger"
	"anomalyd/pkg/types"
)

// Verify re-hashes the cached artifact for name against its registry
// checksum. The file is never modified; a failed verification only drops the
// verification stamp so the next fetch re-downloads.
func (m *Manager) Verify(ctx context.Context, name string) (types.VerifyResponse, error) {
	snap := m.registry.Snapshot()
	e, ok := snap.Lookup(name)
	if !ok {
		return types.VerifyResponse{}, fetch.ErrNotFound(name, snap.Names())
	}
	if !m.store.Has(e.Filename) {
		return types.VerifyResponse{}, ErrNotCached(name)
	}
	path := m.store.Path(e.Filename)

	actual, err := fetch.HashFile(path)
	if err != nil {
		m.noteError(err)
		return types.VerifyResponse{}, err
	}

	resp := types.VerifyResponse{
		Name:     name,
		Path:     path,
		Expected: e.Checksum,
		Actual:   actual,
		OK:       actual == e.Checksum,
	}
	if resp.OK {
		m.store.MarkVerified(e.Filename, actual)
		m.record(name, ledger.ActionVerifyOK, path, actual, 0)
	} else {
		m.store.DropStamp(e.Filename)
		m.record(name, ledger.ActionVerifyFail, path, actual, 0)
		log.Printf("manager event=verify_fail weight=%q expected=%s actual=%s", name, e.Checksum, actual)
	}
	return resp, nil
}
