package history

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrNotFound is matched, via errors.Is, by every failure to obtain the
// history resource: a non-2xx HTTP response or a missing local file.
const ErrNotFound = constError("not found")

// NotFoundError describes which resource could not be fetched.
type NotFoundError struct {
	// Name is the resource name shown to the user, e.g. "index_history.csv".
	Name string
	// Status is the HTTP status code, or 0 for local files.
	Status int
}

func (e *NotFoundError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s not found (HTTP %d)", e.Name, e.Status)
	}
	return e.Name + " not found"
}

// Is reports ErrNotFound as a match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
