package csvsource

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrFetch    = errors.New("fetch ranking csv failed")
	ErrDecode   = errors.New("decode ranking csv failed")
	ErrEncoding = errors.New("unsupported csv encoding")
)

// FetchError reports a resource that could not be retrieved. StatusCode is
// set when the resource answered with a non-success HTTP status.
type FetchError struct {
	Path       string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s: status %d", ErrFetch, e.Path, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", ErrFetch, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s: %s", ErrFetch, e.Path)
	}
}

// Is matches ErrFetch.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

func (e *FetchError) Unwrap() error { return e.Err }
