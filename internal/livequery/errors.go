package livequery

import (
	"errors"
	"fmt"
	"time"
)

// FetchError wraps a failed snapshot read.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError wraps a failed insert/update/upsert.
type WriteError struct {
	Resource string
	Op       string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// PartialWriteError reports a multi-step write that succeeded partially.
// Done lists the steps that committed before Failed broke; the stored
// state is inconsistent until the failed step is retried.
type PartialWriteError struct {
	Resource string
	Done     []string
	Failed   string
	Err      error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write on %s: completed %v, failed at %s: %v",
		e.Resource, e.Done, e.Failed, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// TimeoutError reports a snapshot fetch that exceeded its deadline.
type TimeoutError struct {
	Resource string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetch %s: timed out after %s", e.Resource, e.Timeout)
}

// SubscriptionError reports a change channel that dropped or could not be
// established.
type SubscriptionError struct {
	Resource string
	Err      error
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("subscribe %s: %v", e.Resource, e.Err)
}

func (e *SubscriptionError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is (or wraps) a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
