// Package fetch resolves weight names to verified local files. Resolution is
// linear: registry name, then existing file path, then not-found. Downloads
// are a single attempt; a cached copy that fails verification is deleted and
// fetched again, a fresh download that fails verification is fatal.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"anomalyd/internal/common/fsutil"
	"anomalyd/internal/registry"
)

// connectTimeout bounds dialing and response headers. The body read is
// bounded only by the caller's context so large artifacts can stream.
const connectTimeout = 10 * time.Second

// Source resolves weight names. Both *registry.Registry and
// *registry.Watcher satisfy it.
type Source interface {
	Lookup(name string) (registry.Entry, bool)
	Names() []string
}

// Result describes a resolved weight artifact.
type Result struct {
	// Name as requested.
	Name string
	// Path of the local file.
	Path string
	// Checksum is the verified SHA-256, empty for direct file paths.
	Checksum string
	// Size of the file in bytes.
	Size int64
	// Cached is true when a verified cached copy was returned without
	// downloading.
	Cached bool
	// Direct is true when name was an existing file path outside the
	// registry, returned as-is without verification.
	Direct bool
	// Redownloaded is true when a corrupt cached copy was replaced.
	Redownloaded bool
}

// Fetcher downloads registry weights into a cache directory.
type Fetcher struct {
	src    Source
	dir    string
	client *http.Client
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient overrides the HTTP client, e.g. for tests.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// New creates a Fetcher that resolves names via src and caches into dir.
func New(src Source, dir string, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{src: src, dir: dir, client: defaultClient()}
	for _, o := range opts {
		o(f)
	}
	return f
}

func defaultClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
			TLSHandshakeTimeout:   connectTimeout,
			ResponseHeaderTimeout: connectTimeout,
		},
	}
}

// Dir returns the cache directory.
func (f *Fetcher) Dir() string { return f.dir }

// Fetch resolves name to a verified local file.
func (f *Fetcher) Fetch(ctx context.Context, name string, opts ...Option) (Result, error) {
	cfg := &fetchConfig{}
	for _, o := range opts {
		o(cfg)
	}

	entry, ok := f.src.Lookup(name)
	if !ok {
		if fsutil.IsRegularFile(name) {
			fi, err := os.Stat(name)
			if err != nil {
				return Result{}, fmt.Errorf("stat %s: %w", name, err)
			}
			return Result{Name: name, Path: name, Size: fi.Size(), Direct: true}, nil
		}
		return Result{}, ErrNotFound(name, f.src.Names())
	}
	return f.download(ctx, name, entry, cfg)
}

func (f *Fetcher) download(ctx context.Context, name string, e registry.Entry, cfg *fetchConfig) (Result, error) {
	if err := fsutil.EnsureDir(f.dir); err != nil {
		return Result{}, err
	}
	target := filepath.Join(f.dir, e.Filename)

	redownloaded := false
	if fi, err := os.Stat(target); err == nil {
		if !fi.Mode().IsRegular() {
			return Result{}, ErrExists(target)
		}
		if !cfg.force {
			ok, err := VerifyFile(target, e.Checksum)
			if err != nil {
				return Result{}, err
			}
			if ok {
				return Result{Name: name, Path: target, Checksum: e.Checksum, Size: fi.Size(), Cached: true}, nil
			}
			log.Printf("fetch event=checksum_mismatch path=%s action=redownload", target)
			redownloaded = true
		}
		if err := os.Remove(target); err != nil {
			return Result{}, fmt.Errorf("remove %s: %w", target, err)
		}
	}

	size, err := f.downloadTo(ctx, e.URL, target, cfg.progressFn)
	if err != nil {
		return Result{}, err
	}

	actual, err := HashFile(target)
	if err != nil {
		return Result{}, err
	}
	if actual != e.Checksum {
		return Result{}, ErrIntegrity(target, e.Checksum, actual)
	}
	return Result{Name: name, Path: target, Checksum: e.Checksum, Size: size, Redownloaded: redownloaded}, nil
}

func (f *Fetcher) downloadTo(ctx context.Context, url, target string, progressFn func(Progress)) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("request %s: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}
	if progressFn != nil {
		progressFn(Progress{Received: 0, Total: total})
	}

	out, err := os.Create(target)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", target, err)
	}

	var received int64
	src := io.Reader(resp.Body)
	if progressFn != nil {
		src = &progressReader{r: resp.Body, onRead: func(delta int64) {
			received += delta
			progressFn(Progress{Received: received, Total: total})
		}}
	}
	written, copyErr := io.Copy(out, src)
	closeErr := out.Close()
	if copyErr != nil {
		return 0, fmt.Errorf("write %s: %w", target, copyErr)
	}
	if closeErr != nil {
		return 0, fmt.Errorf("close %s: %w", target, closeErr)
	}
	return written, nil
}

// progressReader invokes onRead with the byte count of every successful read.
type progressReader struct {
	r      io.Reader
	onRead func(delta int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.onRead(int64(n))
	}
	return n, err
}

// HashFile returns the lowercase hex SHA-256 of the file at path.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyFile reports whether the file at path hashes to expected.
func VerifyFile(path, expected string) (bool, error) {
	actual, err := HashFile(path)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}
