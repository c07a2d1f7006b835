// Package manager orchestrates the weight registry, fetcher, cache store and
// ledger behind the daemon and the control CLI. It is structured into small
// files by concern:
//
//   - manager.go: core Manager type, Config, constructor, Ready/Close.
//   - ensure.go: Ensure resolves a name to a verified local file, serializing
//     concurrent fetches of the same name.
//   - verify.go: Verify re-hashes a cached artifact against the registry.
//   - list.go: List/Info merge registry entries with cache state.
//   - evict.go: Evict removes cached artifacts.
//   - status_report.go: Status/History reporting.
//   - errors.go: error types and helpers (IsNotCached).
//
// External packages should treat this package as the orchestration layer and
// use public methods only. Internal types are subject to change.
package manager
