package types

// FetchRequest is the payload of POST /fetch.
type FetchRequest struct {
	// Registry name or path of the weight to fetch.
	// example: ViT-B/16
	Name string `json:"name" example:"ViT-B/16"`
	// If true, re-download even when a cached copy passes verification.
	// example: false
	Force bool `json:"force,omitempty" example:"false"`
}

// FetchProgress is one NDJSON line emitted while POST /fetch runs.
// The final line has Done set and carries the result fields.
type FetchProgress struct {
	// Current phase: download, done or error.
	// example: download
	Phase string `json:"phase" example:"download"`
	// Bytes received so far (download phase).
	// example: 1048576
	Received int64 `json:"received,omitempty" example:"1048576"`
	// Total bytes expected, 0 when the server did not announce a length.
	// example: 335704765
	Total int64 `json:"total,omitempty" example:"335704765"`
	// Set on the final line.
	Done bool `json:"done,omitempty"`
	// Local path of the verified artifact (final line).
	Path string `json:"path,omitempty"`
	// Verified SHA-256 (final line).
	Checksum string `json:"checksum,omitempty"`
	// True when the artifact was already cached and no download ran.
	Cached bool `json:"cached,omitempty"`
	// Error message when the fetch failed.
	Error string `json:"error,omitempty"`
}

// VerifyRequest is the payload of POST /verify.
type VerifyRequest struct {
	// Registry name of the cached weight to re-hash.
	// example: ViT-B/16
	Name string `json:"name" example:"ViT-B/16"`
}

// VerifyResponse reports a verification outcome.
type VerifyResponse struct {
	// Weight name.
	// example: ViT-B/16
	Name string `json:"name" example:"ViT-B/16"`
	// Local path that was hashed.
	Path string `json:"path"`
	// Expected SHA-256 from the registry.
	Expected string `json:"expected"`
	// Actual SHA-256 of the file.
	Actual string `json:"actual"`
	// Whether expected and actual match.
	// example: true
	OK bool `json:"ok" example:"true"`
}

// EvictRequest is the payload of POST /evict.
type EvictRequest struct {
	// Registry name or cache file name to remove.
	// example: ViT-B/16
	Name string `json:"name" example:"ViT-B/16"`
}

// EvictResponse confirms a removal.
type EvictResponse struct {
	// Weight name that was evicted.
	// example: ViT-B/16
	Name string `json:"name" example:"ViT-B/16"`
	// Cache file that was removed.
	// example: ViT-B-16.pt
	Filename string `json:"filename" example:"ViT-B-16.pt"`
}

// WeightsResponse wraps the list returned by GET /weights.
type WeightsResponse struct {
	// Known weights, registry entries first, then unregistered cache files.
	Weights []Weight `json:"weights"`
}

// HistoryResponse wraps the ledger rows returned by GET /history.
type HistoryResponse struct {
	Events []FetchEvent `json:"events"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Cache directory in use.
	// example: /home/user/.cache/anomalyd/weights
	WeightsDir string `json:"weights_dir" example:"/home/user/.cache/anomalyd/weights"`
	// Number of registry entries currently loaded.
	// example: 9
	RegistryEntries int `json:"registry_entries" example:"9"`
	// Number of files in the cache directory.
	// example: 3
	CachedFiles int `json:"cached_files" example:"3"`
	// Total bytes in the cache directory.
	// example: 1006920301
	CacheBytes int64 `json:"cache_bytes" example:"1006920301"`
	// Names with a fetch currently in flight.
	InFlight []string `json:"in_flight,omitempty"`
	// Ledger event counts by action.
	EventCounts map[string]int64 `json:"event_counts,omitempty"`
	// Total fetches that ended in a verified artifact.
	// example: 12
	FetchesTotal uint64 `json:"fetches_total" example:"12"`
	// Total evictions performed.
	// example: 2
	EvictionsTotal uint64 `json:"evictions_total" example:"2"`
	// Number of registry hot reloads since start.
	// example: 1
	RegistryReloads uint64 `json:"registry_reloads" example:"1"`
	// Last error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
