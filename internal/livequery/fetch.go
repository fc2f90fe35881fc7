package livequery

import (
	"context"
	"errors"
	"time"
)

// DefaultFetchTimeout bounds a snapshot fetch when no explicit timeout is
// configured.
const DefaultFetchTimeout = 10 * time.Second

// FetchFunc reads the current snapshot of a resource. It must be an
// idempotent read with no side effects.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Query runs fn under a bounded deadline and classifies the failure:
// deadline overruns become *TimeoutError, everything else *FetchError.
func Query[T any](ctx context.Context, resource string, timeout time.Duration, fn FetchFunc[T]) ([]T, error) {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	records, err := fn(fctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(fctx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{Resource: resource, Timeout: timeout}
		}
		return nil, &FetchError{Resource: resource, Err: err}
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}
