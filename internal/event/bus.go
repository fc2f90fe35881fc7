// Package event carries resource-change notifications between the write
// path, live views, and connected SSE clients. An event is only an
// invalidation signal: consumers re-fetch, they never apply it as a diff.
package event

import (
	"context"
	"sync"
)

// Action is the kind of change that occurred.
type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event notes that a record in Resource changed. RecordID is advisory;
// delivery order is not guaranteed to match commit order.
type Event struct {
	Resource string `json:"resource"`
	Action   Action `json:"action"`
	RecordID string `json:"record_id,omitempty"`
}

// ResourceAll subscribes to changes on every resource.
const ResourceAll = "*"

// Bus publishes and subscribes to change events. Multiple subscriptions
// to the same resource are independent; canceling one never affects
// another.
type Bus interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe(resource string, fn func(Event)) (cancel func(), err error)
}

// MemoryBus is the in-process Bus used by tests and single-node setups.
type MemoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func(Event)
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[int]func(Event))}
}

// Publish delivers ev synchronously to every matching subscriber.
// Handlers must not block.
func (b *MemoryBus) Publish(_ context.Context, ev Event) error {
	b.mu.RLock()
	handlers := make([]func(Event), 0, 4)
	for _, fn := range b.subs[ev.Resource] {
		handlers = append(handlers, fn)
	}
	for _, fn := range b.subs[ResourceAll] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
	return nil
}

// Subscribe registers fn for events on resource (or ResourceAll). The
// returned cancel is idempotent.
func (b *MemoryBus) Subscribe(resource string, fn func(Event)) (func(), error) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[resource] == nil {
		b.subs[resource] = make(map[int]func(Event))
	}
	b.subs[resource][id] = fn
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[resource], id)
			b.mu.Unlock()
		})
	}
	return cancel, nil
}
