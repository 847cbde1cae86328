package echonest

import (
	"errors"
	"fmt"
)

// Error represents an Echo Nest API error.
//
// The Error type provides structured error information including
// the Echo Nest status code and message. It implements error, and
// provides additional methods for retry logic.
type Error struct {
	Code    int    // Echo Nest status code
	Message string // Error message from the Echo Nest
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("echonest: error %d: %s", e.Code, e.Message)
}

// Is checks if the target error is an Echo Nest error.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Temporary returns true if the error is temporary and the request
// may be retried by the caller.
//
// Only the rate limit status code is considered temporary. Network
// errors and timeouts should also be considered temporary but are
// not represented by this type.
func (e *Error) Temporary() bool {
	return e.Code == StatusRateLimitExceeded
}

// Echo Nest status codes, reported in the status block of every response.
const (
	StatusUnknownError      = -1
	StatusSuccess           = 0
	StatusMissingAPIKey     = 1
	StatusNotAllowed        = 2
	StatusRateLimitExceeded = 3
	StatusMissingParameter  = 4
	StatusInvalidParameter  = 5
)

// ErrNoSuchField is returned by Document.Get when the requested field
// is not present in the underlying response item. It signals a
// programming error, not a service failure.
var ErrNoSuchField = errors.New("echonest: no such field")
