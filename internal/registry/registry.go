// Package registry maps weight names to download URLs. Every URL carries the
// artifact's expected SHA-256 as its second-to-last path segment; entries that
// break that convention are rejected at load time.
package registry

import (
	"fmt"
	"net/url"
	"path"
	"sort"

	"anomalyd/pkg/types"
)

// SourceBuiltin marks entries from the compiled-in table.
const SourceBuiltin = "builtin"

// Entry is one resolvable weight.
type Entry struct {
	Name        string
	URL         string
	Description string
	// Checksum is the expected SHA-256, extracted from the URL at load time.
	Checksum string
	// Filename is the base name of the URL path, the name used in the cache dir.
	Filename string
	// Source is SourceBuiltin or the registry file the entry came from.
	Source string
}

// Registry is an immutable name -> Entry snapshot.
type Registry struct {
	entries map[string]Entry
	names   []string
}

// builtinWeights are the CLIP image encoders used by the video anomaly models.
var builtinWeights = map[string]string{
	"RN50":           "https://openaipublic.azureedge.net/clip/models/afeb0e10f9e5a86da6080e35cf09123aca3b358a0c3e3b6c78a7b63bc04b6762/RN50.pt",
	"RN101":          "https://openaipublic.azureedge.net/clip/models/8fa8567bab74a42d41c5915025a8e4538c3bdbe8804a470a72f30b0d94fab599/RN101.pt",
	"RN50x4":         "https://openaipublic.azureedge.net/clip/models/7e526bd135e493cef0776de27d5f42653e6b4c8bf9e0f653bb11773263205fdd/RN50x4.pt",
	"RN50x16":        "https://openaipublic.azureedge.net/clip/models/52378b407f34354e150460fe41077663dd5b39c54cd0bfd2b27167a4a06ec9aa/RN50x16.pt",
	"RN50x64":        "https://openaipublic.azureedge.net/clip/models/be1cfb55d75a9666199fb2206c106743da0f6468c9d327f3e0d0a543a9919d9c/RN50x64.pt",
	"ViT-B/32":       "https://openaipublic.azureedge.net/clip/models/40d365715913c9da98579312b702a82c18be219cc2a73407c4526f58eba950af/ViT-B-32.pt",
	"ViT-B/16":       "https://openaipublic.azureedge.net/clip/models/5806e77cd80f8b59890b7e101eabd078d9fb84e6937f9e85e4ecb61988df416f/ViT-B-16.pt",
	"ViT-L/14":       "https://openaipublic.azureedge.net/clip/models/b8cca3fd41ae0c99ba7e8951adf17d267cdb84cd88be6f7c2e0eca1737a03836/ViT-L-14.pt",
	"ViT-L/14@336px": "https://openaipublic.azureedge.net/clip/models/3035c92b350959924f9f00213499208652fc7ea050643e8b385c2dac08641f02/ViT-L-14-336px.pt",
}

// Builtin returns the compiled-in registry.
func Builtin() *Registry {
	r := &Registry{entries: make(map[string]Entry, len(builtinWeights))}
	for name, u := range builtinWeights {
		e, err := newEntry(name, u, "", SourceBuiltin)
		if err != nil {
			// The builtin table is validated by tests; a broken entry here is
			// a programming error.
			panic(fmt.Sprintf("builtin registry entry %q: %v", name, err))
		}
		r.entries[name] = e
	}
	r.reindex()
	return r
}

func newEntry(name, rawURL, description, source string) (Entry, error) {
	if name == "" {
		return Entry{}, fmt.Errorf("empty weight name")
	}
	sum, err := ChecksumFromURL(rawURL)
	if err != nil {
		return Entry{}, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Entry{}, fmt.Errorf("parse url: %w", err)
	}
	return Entry{
		Name:        name,
		URL:         rawURL,
		Description: description,
		Checksum:    sum,
		Filename:    path.Base(u.Path),
		Source:      source,
	}, nil
}

// ChecksumFromURL extracts the expected SHA-256 from the second-to-last URL
// path segment and validates it is 64 lowercase hex characters.
func ChecksumFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	dir := path.Base(path.Dir(u.Path))
	if !isHex256(dir) {
		return "", fmt.Errorf("url %s: second-to-last path segment %q is not a sha256 hex digest", rawURL, dir)
	}
	return dir, nil
}

func isHex256(s string) bool {
	if len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Lookup returns the entry for name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns all weight names, sorted. Used for listings and for the
// not-found error message.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns the entries in name order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.entries[n])
	}
	return out
}

// Weights returns the entries as API listing items (no cache state).
func (r *Registry) Weights() []types.Weight {
	out := make([]types.Weight, 0, len(r.names))
	for _, n := range r.names {
		e := r.entries[n]
		out = append(out, types.Weight{
			Name:     e.Name,
			URL:      e.URL,
			Checksum: e.Checksum,
			Filename: e.Filename,
			Source:   e.Source,
		})
	}
	return out
}

func (r *Registry) reindex() {
	r.names = r.names[:0]
	for n := range r.entries {
		r.names = append(r.names, n)
	}
	sort.Strings(r.names)
}
