package manager

// notCachedError signals a verify/evict request for a weight that is known to
// the registry but absent from the cache, for 404 mapping.
type notCachedError struct{ name string }

func (e notCachedError) Error() string { return "weight not cached: " + e.name }

// ErrNotCached constructs a notCachedError.
func ErrNotCached(name string) error { return notCachedError{name: name} }

// IsNotCached reports whether err indicates an uncached weight.
func IsNotCached(err error) bool {
	_, ok := err.(notCachedError)
	return ok
}
