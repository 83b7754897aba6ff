package remote

import (
	"errors"
	"fmt"
)

// Category classifies a failure for whoever decides to retry. Background
// saves never retry; the close-time flush retries recoverable failures only.
type Category int

const (
	// Recoverable failures may succeed on a fresh attempt: 5xx statuses,
	// 408/429 and transport-level errors.
	Recoverable Category = iota

	// Irrecoverable failures will not improve with retries: the remaining
	// 4xx statuses, typically bad credentials or a missing bin.
	Irrecoverable
)

func (c Category) String() string {
	switch c {
	case Recoverable:
		return "recoverable"
	case Irrecoverable:
		return "irrecoverable"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// FetchError reports a non-404 failure status from the document GET.
// Callers substitute the default bundle and log it; it never blocks the UI.
type FetchError struct {
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch document: %s", e.Status)
}

// SaveError reports a failed document PUT, either a bad status or a
// transport error.
type SaveError struct {
	StatusCode int // 0 for transport errors
	Underlying error
}

func (e *SaveError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("save document: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("save document: %v", e.Underlying)
}

func (e *SaveError) Unwrap() error { return e.Underlying }

// categoryFor maps an HTTP status to a retry category. Status 0 stands for
// a transport-level failure.
func categoryFor(statusCode int) Category {
	switch {
	case statusCode == 408, statusCode == 429:
		return Recoverable
	case statusCode >= 400 && statusCode < 500:
		return Irrecoverable
	default:
		return Recoverable
	}
}

// IsRecoverable reports whether err is worth retrying.
func IsRecoverable(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return categoryFor(fe.StatusCode) == Recoverable
	}
	var se *SaveError
	if errors.As(err, &se) {
		return categoryFor(se.StatusCode) == Recoverable
	}
	// Unclassified errors are transport-level; retry them.
	return true
}
