package e2e

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"anomalyd/internal/fetch"
	"anomalyd/internal/httpapi"
	"anomalyd/internal/ledger"
	"anomalyd/internal/manager"
	"anomalyd/internal/registry"
	"anomalyd/internal/store"
)

// upstream serves weight artifacts at /<sha256>/<filename> and counts hits
// per path so tests can assert cache idempotence.
type upstream struct {
	srv *httptest.Server

	mu      sync.Mutex
	hits    map[string]int
	content map[string][]byte // path -> bytes
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{
		hits:    make(map[string]int),
		content: make(map[string][]byte),
	}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		body, ok := u.content[r.URL.Path]
		if ok {
			u.hits[r.URL.Path]++
		}
		u.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(body)))
		_, _ = w.Write(body)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

// add registers an artifact and returns its registry URL (checksum embedded
// as the second-to-last path segment).
func (u *upstream) add(filename string, body []byte) string {
	sum := sha256.Sum256(body)
	checksum := hex.EncodeToString(sum[:])
	path := "/" + checksum + "/" + filename
	u.mu.Lock()
	u.content[path] = body
	u.mu.Unlock()
	return u.srv.URL + path
}

func (u *upstream) hitsFor(url string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	for path, n := range u.hits {
		if u.srv.URL+path == url {
			return n
		}
	}
	return 0
}

// writeRegistryFile writes a YAML registry document mapping names to URLs.
func writeRegistryFile(t *testing.T, entries map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("weights:\n")
	for name, url := range entries {
		fmt.Fprintf(&buf, "  %s:\n    url: %s\n", name, url)
	}
	path := filepath.Join(t.TempDir(), "registry.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write registry file: %v", err)
	}
	return path
}

// newServer wires a full daemon stack over a temp weights dir and returns the
// test server plus the weights dir path.
func newServer(t *testing.T, registryFiles ...string) (*httptest.Server, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "weights")
	st, err := store.New(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	watcher, err := registry.NewWatcher(registryFiles, nil)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	t.Cleanup(watcher.Close)
	led, err := ledger.Open(filepath.Join(dir, ".ledger.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	mgr := manager.New(manager.Config{
		Registry: watcher,
		Fetcher:  fetch.New(watcher, dir),
		Store:    st,
		Ledger:   led,
	})
	t.Cleanup(func() { _ = mgr.Close() })
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv, dir
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
