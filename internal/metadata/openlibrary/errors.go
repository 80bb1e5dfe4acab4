package openlibrary

import (
	"errors"
	"fmt"
)

// Sentinel errors for OpenLibrary operations.
var (
	ErrNotFound    = errors.New("openlibrary: not found")
	ErrRateLimited = errors.New("openlibrary: rate limited by server")
	ErrBadRequest  = errors.New("openlibrary: bad request")
	ErrServer      = errors.New("openlibrary: server error")
	ErrInvalidID   = errors.New("openlibrary: invalid work ID")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op     string // "search", "work", "editions", "subject", "author"
	Target string // work ID, subject slug or query, if applicable
	Err    error
}

func (e *Error) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("openlibrary %s [%s]: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("openlibrary %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, target string, err error) error {
	return &Error{Op: op, Target: target, Err: err}
}
