// Package livequery consolidates the fetch→derive→subscribe pattern used
// by every data-bound screen: take an authoritative snapshot of a
// resource, keep it live through change-event invalidations, and guard
// against stale in-flight results and post-disposal updates.
package livequery

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the lifecycle state of a View.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateRefreshing
	StateError
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateRefreshing:
		return "refreshing"
	case StateError:
		return "error"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// Snapshot is a point-in-time copy of a View's visible state.
type Snapshot[T any] struct {
	State      State
	Records    []T
	Err        error
	Generation uint64
}

// SubscribeFunc attaches an invalidation callback to a change channel and
// returns a cancel func. The callback carries no payload: an event means
// "something changed, re-fetch", never an authoritative diff.
type SubscribeFunc func(fn func()) (cancel func(), err error)

type viewOptions struct {
	timeout   time.Duration
	debounce  time.Duration
	logger    *zap.Logger
	subscribe SubscribeFunc
	onChange  func()
}

// Option configures a View.
type Option func(*viewOptions)

// WithTimeout bounds each snapshot fetch; overruns surface as *TimeoutError.
func WithTimeout(d time.Duration) Option {
	return func(o *viewOptions) { o.timeout = d }
}

// WithDebounce delays a refresh after an invalidation so rapid successive
// change events collapse into one fetch.
func WithDebounce(d time.Duration) Option {
	return func(o *viewOptions) { o.debounce = d }
}

// WithLogger sets the logger used for discarded results and fetch failures.
func WithLogger(l *zap.Logger) Option {
	return func(o *viewOptions) { o.logger = l }
}

// WithSubscribe wires the view to a change channel on Start.
func WithSubscribe(s SubscribeFunc) Option {
	return func(o *viewOptions) { o.subscribe = s }
}

// WithOnChange registers a callback invoked after every applied state
// transition (never for discarded stale results).
func WithOnChange(fn func()) Option {
	return func(o *viewOptions) { o.onChange = fn }
}

// View keeps a live snapshot of one resource. Fetches are tagged with a
// generation counter; a result whose generation is no longer the newest
// started fetch is discarded, as is anything arriving after Close.
type View[T any] struct {
	resource string
	fetch    FetchFunc[T]
	opt      viewOptions

	mu       sync.Mutex
	state    State
	records  []T
	err      error
	gen      uint64 // newest started fetch
	applied  uint64 // generation of the visible records
	inflight bool
	pending  bool
	closed   bool
	unsub    func()
	timer    *time.Timer
	baseCtx  context.Context
	cancel   context.CancelFunc
}

// NewView builds an idle view over resource. Call Start to load and
// subscribe, Close to dispose.
func NewView[T any](resource string, fetch FetchFunc[T], opts ...Option) *View[T] {
	v := &View[T]{
		resource: resource,
		fetch:    fetch,
		state:    StateIdle,
	}
	v.opt.logger = zap.NewNop()
	for _, o := range opts {
		o(&v.opt)
	}
	return v
}

// Resource returns the subscribed resource name.
func (v *View[T]) Resource() string { return v.resource }

// Start runs the initial fetch and attaches the change subscription.
// A subscription failure is returned as *SubscriptionError and leaves the
// view in the error state; Start is a no-op after the first call.
func (v *View[T]) Start(ctx context.Context) error {
	v.mu.Lock()
	if v.state != StateIdle {
		v.mu.Unlock()
		return nil
	}
	v.baseCtx, v.cancel = context.WithCancel(ctx)
	if v.opt.subscribe != nil {
		unsub, err := v.opt.subscribe(v.Invalidate)
		if err != nil {
			serr := &SubscriptionError{Resource: v.resource, Err: err}
			v.state = StateError
			v.err = serr
			v.mu.Unlock()
			return serr
		}
		v.unsub = unsub
	}
	v.state = StateLoading
	gen := v.nextGenLocked()
	v.mu.Unlock()

	go v.runFetch(gen)
	return nil
}

// Invalidate signals that the underlying resource changed. If a fetch is
// already in flight exactly one more is queued; otherwise a refresh starts
// (after the configured debounce window, when set).
func (v *View[T]) Invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.state == StateIdle {
		return
	}
	if v.inflight {
		v.pending = true
		return
	}
	if v.opt.debounce > 0 {
		if v.timer == nil {
			v.timer = time.AfterFunc(v.opt.debounce, v.debounceFire)
		}
		return
	}
	v.beginRefreshLocked()
}

func (v *View[T]) debounceFire() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.timer = nil
	if v.closed {
		return
	}
	if v.inflight {
		v.pending = true
		return
	}
	v.beginRefreshLocked()
}

// beginRefreshLocked starts a new generation. Caller holds v.mu.
func (v *View[T]) beginRefreshLocked() {
	if v.state == StateReady {
		v.state = StateRefreshing // stale data stays visible
	} else {
		v.state = StateLoading
	}
	gen := v.nextGenLocked()
	go v.runFetch(gen)
}

func (v *View[T]) nextGenLocked() uint64 {
	v.gen++
	v.inflight = true
	return v.gen
}

func (v *View[T]) runFetch(gen uint64) {
	records, err := Query(v.baseCtx, v.resource, v.opt.timeout, v.fetch)

	v.mu.Lock()
	if v.closed || gen != v.gen {
		// Disposed, or a newer fetch was started for this view: this
		// result is stale and must not overwrite the visible state.
		v.opt.logger.Debug("discarding stale fetch result",
			zap.String("resource", v.resource),
			zap.Uint64("generation", gen),
			zap.Uint64("current", v.gen))
		v.mu.Unlock()
		return
	}
	v.inflight = false
	if err != nil {
		v.state = StateError
		v.err = err
		v.opt.logger.Warn("live view fetch failed",
			zap.String("resource", v.resource),
			zap.Error(err))
	} else {
		v.state = StateReady
		v.records = records
		v.err = nil
		v.applied = gen
	}
	if v.pending {
		v.pending = false
		v.beginRefreshLocked()
	}
	notify := v.opt.onChange
	v.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Snapshot returns a copy of the visible state.
func (v *View[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	records := make([]T, len(v.records))
	copy(records, v.records)
	return Snapshot[T]{
		State:      v.state,
		Records:    records,
		Err:        v.err,
		Generation: v.applied,
	}
}

// Close disposes the view: the subscription is released exactly once and
// no state update happens afterwards, even if the change channel still
// delivers or an in-flight fetch resolves. Safe to call repeatedly.
func (v *View[T]) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.state = StateDisposed
	unsub := v.unsub
	v.unsub = nil
	cancel := v.cancel
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	v.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	if cancel != nil {
		cancel()
	}
}
