package fetch

// Progress reports download state. Total is 0 when the server did not
// announce a Content-Length.
type Progress struct {
	Received int64
	Total    int64
}

// Option configures a single fetch.
type Option func(*fetchConfig)

type fetchConfig struct {
	// force re-downloads even when the cached copy verifies.
	force bool

	// progressFn receives download progress. Called from the fetch goroutine.
	progressFn func(Progress)
}

// WithForce re-downloads even when a cached copy passes verification.
func WithForce() Option {
	return func(c *fetchConfig) { c.force = true }
}

// WithProgress sets a callback for download progress updates.
func WithProgress(fn func(Progress)) Option {
	return func(c *fetchConfig) { c.progressFn = fn }
}
