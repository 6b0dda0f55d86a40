package backend

import (
	"errors"
	"fmt"
)

// ErrUnavailable reports that no live backend is configured. Resolve handles
// it by selecting offline mode; callers only see it when invoking a
// live-only capability on the offline stub.
var ErrUnavailable = errors.New("backend: live backend unavailable")

// CallError wraps a failed live backend call. The backend does not retry;
// retry policy belongs to the caller.
type CallError struct {
	Op  string
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("backend: %s: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// ParseError reports that a judge response was not valid structured data of
// the expected shape. It is never silently coerced into a zero-score result.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("backend: malformed judge payload: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
