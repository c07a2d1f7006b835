package manager

import (
	"sort"

	"anomalyd/internal/fetch"
	"anomalyd/internal/store"
	"anomalyd/pkg/types"
)

// SourceCache marks listing rows for cache files with no registry entry.
const SourceCache = "cache"

// List merges registry entries with cache state: every registry name first,
// then cached files nothing in the registry points at.
func (m *Manager) List() ([]types.Weight, error) {
	items, err := m.store.List()
	if err != nil {
		return nil, err
	}
	byFile := make(map[string]store.Item, len(items))
	for _, it := range items {
		byFile[it.Filename] = it
	}

	snap := m.registry.Snapshot()
	entries := snap.Entries()
	out := make([]types.Weight, 0, len(entries)+len(byFile))
	for _, e := range entries {
		w := types.Weight{
			Name:     e.Name,
			URL:      e.URL,
			Checksum: e.Checksum,
			Filename: e.Filename,
			Source:   e.Source,
		}
		if it, ok := byFile[e.Filename]; ok {
			fillCacheState(&w, it)
			delete(byFile, e.Filename)
		}
		out = append(out, w)
	}

	orphans := make([]types.Weight, 0, len(byFile))
	for _, it := range byFile {
		w := types.Weight{Name: it.Filename, Filename: it.Filename, Source: SourceCache}
		fillCacheState(&w, it)
		orphans = append(orphans, w)
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].Filename < orphans[j].Filename })
	return append(out, orphans...), nil
}

// Info returns the merged view for a single name: a registry entry, or a bare
// cache file when no entry matches.
func (m *Manager) Info(name string) (types.Weight, error) {
	snap := m.registry.Snapshot()
	if e, ok := snap.Lookup(name); ok {
		w := types.Weight{
			Name:     e.Name,
			URL:      e.URL,
			Checksum: e.Checksum,
			Filename: e.Filename,
			Source:   e.Source,
		}
		if items, err := m.store.List(); err == nil {
			for _, it := range items {
				if it.Filename == e.Filename {
					fillCacheState(&w, it)
					break
				}
			}
		}
		return w, nil
	}
	if m.store.Has(name) {
		items, err := m.store.List()
		if err != nil {
			return types.Weight{}, err
		}
		for _, it := range items {
			if it.Filename == name {
				w := types.Weight{Name: name, Filename: name, Source: SourceCache}
				fillCacheState(&w, it)
				return w, nil
			}
		}
	}
	return types.Weight{}, fetch.ErrNotFound(name, snap.Names())
}

func fillCacheState(w *types.Weight, it store.Item) {
	w.Cached = true
	w.Path = it.Path
	w.SizeBytes = it.SizeBytes
	w.Verified = it.Verified
	if kind, err := fetch.Sniff(it.Path); err == nil {
		w.Kind = string(kind)
	}
}
