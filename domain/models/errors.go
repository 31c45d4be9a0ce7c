package models

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError reports that the sink rejected a request because the
// account is over its posting quota. ResetAt carries the sink's reset-time
// hint when the response included one; it is zero otherwise.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "sink rate limit exceeded"
	}
	return fmt.Sprintf("sink rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// IsRateLimit reports whether err is (or wraps) a sink rate-limit rejection.
func IsRateLimit(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}
