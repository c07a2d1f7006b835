package fetch

import "fmt"

// notFoundError signals an unknown weight name for 404 mapping. The message
// enumerates the available names so callers can correct the request.
type notFoundError struct {
	name      string
	available []string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("weight %s not found; available weights = %v", e.name, e.available)
}

// ErrNotFound constructs a notFoundError.
func ErrNotFound(name string, available []string) error {
	return notFoundError{name: name, available: available}
}

// IsNotFound reports whether err indicates an unknown weight name.
func IsNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}

// integrityError signals a post-download checksum mismatch for 502 mapping.
// The file is left on disk; the next fetch takes the delete-and-refetch path.
type integrityError struct {
	path     string
	expected string
	actual   string
}

func (e integrityError) Error() string {
	return fmt.Sprintf("weight downloaded but the checksum does not match: %s (expected %s, got %s)", e.path, e.expected, e.actual)
}

// ErrIntegrity constructs an integrityError.
func ErrIntegrity(path, expected, actual string) error {
	return integrityError{path: path, expected: expected, actual: actual}
}

// IsIntegrity reports whether err indicates a failed checksum verification.
func IsIntegrity(err error) bool {
	_, ok := err.(integrityError)
	return ok
}

// existsError signals that the download target exists and is not a regular
// file, for 409 mapping.
type existsError struct{ path string }

func (e existsError) Error() string {
	return e.path + " exists and is not a regular file"
}

// ErrExists constructs an existsError.
func ErrExists(path string) error { return existsError{path: path} }

// IsExists reports whether err indicates a non-regular file at the target path.
func IsExists(err error) bool {
	_, ok := err.(existsError)
	return ok
}
