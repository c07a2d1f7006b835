// Package store manages the local weights cache directory: resolution of its
// location, listing, eviction, and verification stamps so listings do not
// re-hash multi-gigabyte files.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"anomalyd/internal/common/fsutil"
)

// EnvWeightsDir overrides the cache directory when set.
const EnvWeightsDir = "ANOMALYD_WEIGHTS_DIR"

// stampsFile sits inside the cache dir next to the artifacts.
const stampsFile = ".stamps.json"

// ResolveDir picks the cache directory: environment variable, then the
// configured value, then ~/.cache/anomalyd/weights.
func ResolveDir(configured string) (string, error) {
	if env := os.Getenv(EnvWeightsDir); env != "" {
		return fsutil.ExpandHome(env)
	}
	if configured != "" {
		return fsutil.ExpandHome(configured)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, ".cache", "anomalyd", "weights"), nil
}

// Item is one cached artifact.
type Item struct {
	Filename  string
	Path      string
	SizeBytes int64
	ModTime   int64
	// Verified is true when the file still matches its verification stamp.
	Verified bool
	// Checksum from the stamp, empty when unverified.
	Checksum string
}

// Stamp records a passed verification for a cache file.
type Stamp struct {
	Checksum  string `json:"checksum"`
	SizeBytes int64  `json:"size_bytes"`
	ModTime   int64  `json:"mtime_unix"`
}

// Store is a weights cache directory.
type Store struct {
	dir string

	mu     sync.Mutex
	stamps map[string]Stamp
}

// New opens (creating if needed) the cache directory at dir.
func New(dir string) (*Store, error) {
	if err := fsutil.EnsureDir(dir); err != nil {
		return nil, err
	}
	s := &Store{dir: dir, stamps: map[string]Stamp{}}
	s.loadStamps()
	return s, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the absolute path for a cache file name.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// List returns the cached artifacts sorted by filename. Dotfiles are cache
// metadata (stamps, ledger and its sidecars), never artifacts, and are
// skipped.
func (s *Store) List() ([]Item, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		item := Item{
			Filename:  e.Name(),
			Path:      filepath.Join(s.dir, e.Name()),
			SizeBytes: fi.Size(),
			ModTime:   fi.ModTime().Unix(),
		}
		if st, ok := s.stamps[e.Name()]; ok && st.SizeBytes == item.SizeBytes && st.ModTime == item.ModTime {
			item.Verified = true
			item.Checksum = st.Checksum
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Filename < items[j].Filename })
	return items, nil
}

// Has reports whether filename exists as a regular file in the cache.
func (s *Store) Has(filename string) bool {
	return fsutil.IsRegularFile(s.Path(filename))
}

// Remove evicts filename from the cache and drops its stamp. Returns
// os.ErrNotExist (wrapped) when the file is absent.
func (s *Store) Remove(filename string) error {
	if err := validName(filename); err != nil {
		return err
	}
	if err := os.Remove(s.Path(filename)); err != nil {
		return fmt.Errorf("evict %s: %w", filename, err)
	}
	s.mu.Lock()
	delete(s.stamps, filename)
	s.saveStampsLocked()
	s.mu.Unlock()
	return nil
}

// TotalBytes sums the sizes of all cached artifacts.
func (s *Store) TotalBytes() (int64, error) {
	items, err := s.List()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, it := range items {
		total += it.SizeBytes
	}
	return total, nil
}

// MarkVerified stamps filename with the checksum it just hashed to.
func (s *Store) MarkVerified(filename, checksum string) {
	fi, err := os.Stat(s.Path(filename))
	if err != nil {
		return
	}
	s.mu.Lock()
	s.stamps[filename] = Stamp{Checksum: checksum, SizeBytes: fi.Size(), ModTime: fi.ModTime().Unix()}
	s.saveStampsLocked()
	s.mu.Unlock()
}

// DropStamp forgets the verification stamp for filename.
func (s *Store) DropStamp(filename string) {
	s.mu.Lock()
	if _, ok := s.stamps[filename]; ok {
		delete(s.stamps, filename)
		s.saveStampsLocked()
	}
	s.mu.Unlock()
}

// Stamps are best-effort metadata; load and save errors are swallowed and the
// worst case is an extra re-hash.
func (s *Store) loadStamps() {
	data, err := os.ReadFile(filepath.Join(s.dir, stampsFile))
	if err != nil {
		return
	}
	var m map[string]Stamp
	if err := json.Unmarshal(data, &m); err == nil {
		s.stamps = m
	}
}

func (s *Store) saveStampsLocked() {
	b, err := json.MarshalIndent(s.stamps, "", "  ")
	if err != nil {
		return
	}
	_ = fsutil.WriteFileAtomic(filepath.Join(s.dir, stampsFile), b, 0o644)
}

func validName(filename string) error {
	if filename == "" || strings.HasPrefix(filename, ".") ||
		strings.ContainsAny(filename, `/\`) {
		return fmt.Errorf("invalid cache file name %q", filename)
	}
	return nil
}
