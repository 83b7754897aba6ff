package store

import (
	"fmt"
	"time"
)

// Option configures a Store during construction in New.
type Option func(*Store) error

// WithDebounce sets the quiet window that coalesces edits into one save.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) error {
		if d <= 0 {
			return fmt.Errorf("debounce window must be > 0")
		}
		s.window = d
		return nil
	}
}

// WithFlushRetries bounds how many times Flush retries a recoverable
// failure before giving up.
func WithFlushRetries(n uint64) Option {
	return func(s *Store) error {
		s.flushRetries = n
		return nil
	}
}
