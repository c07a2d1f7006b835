package types

// Weight describes a model weight artifact known to the daemon, merging
// registry metadata with local cache state.
type Weight struct {
	// Registry name of the weight.
	// example: ViT-B/16
	Name string `json:"name" example:"ViT-B/16"`
	// Download URL. The expected SHA-256 is embedded as the second-to-last
	// path segment.
	// example: https://openaipublic.azureedge.net/clip/models/5806e77cd80f8b59890b7e101eabd078d9fb84e6937f9e85e4ecb61988df416f/ViT-B-16.pt
	URL string `json:"url,omitempty" example:"https://openaipublic.azureedge.net/clip/models/5806e77cd80f8b59890b7e101eabd078d9fb84e6937f9e85e4ecb61988df416f/ViT-B-16.pt"`
	// Expected SHA-256 of the artifact, lowercase hex.
	// example: 5806e77cd80f8b59890b7e101eabd078d9fb84e6937f9e85e4ecb61988df416f
	Checksum string `json:"checksum,omitempty" example:"5806e77cd80f8b59890b7e101eabd078d9fb84e6937f9e85e4ecb61988df416f"`
	// File name inside the cache directory (base name of the URL path).
	// example: ViT-B-16.pt
	Filename string `json:"filename,omitempty" example:"ViT-B-16.pt"`
	// Absolute path of the cached file, empty when not cached.
	// example: /home/user/.cache/anomalyd/weights/ViT-B-16.pt
	Path string `json:"path,omitempty" example:"/home/user/.cache/anomalyd/weights/ViT-B-16.pt"`
	// Whether the artifact is present in the cache directory.
	// example: true
	Cached bool `json:"cached" example:"true"`
	// Whether the cached file still matches its last verification stamp.
	// example: true
	Verified bool `json:"verified,omitempty" example:"true"`
	// Size of the cached file in bytes, 0 when not cached.
	// example: 335704765
	SizeBytes int64 `json:"size_bytes,omitempty" example:"335704765"`
	// Artifact kind sniffed from file content (torchscript, checkpoint,
	// pickle, unknown). Empty when not cached.
	// example: torchscript
	Kind string `json:"kind,omitempty" example:"torchscript"`
	// Where the registry entry came from: builtin or the registry file path.
	// example: builtin
	Source string `json:"source,omitempty" example:"builtin"`
}

// FetchEvent is one row of the fetch ledger.
type FetchEvent struct {
	// Ledger row ID.
	// example: 42
	ID int64 `json:"id" example:"42"`
	// Weight name the event refers to.
	// example: ViT-B/16
	Name string `json:"name" example:"ViT-B/16"`
	// Lifecycle action (download, cache_hit, corrupt_redownload, verify_ok, verify_fail, evict).
	// example: download
	Action string `json:"action" example:"download"`
	// Local path involved, if any.
	Path string `json:"path,omitempty"`
	// Checksum involved, if any.
	Checksum string `json:"checksum,omitempty"`
	// Size in bytes at event time, if known.
	SizeBytes int64 `json:"size_bytes,omitempty"`
	// Event time in unix seconds.
	// example: 1700000000
	CreatedAtUnix int64 `json:"created_at_unix" example:"1700000000"`
}
