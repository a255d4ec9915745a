// Package bus carries refresh signals from status mutations to dependent views.
package bus

import (
	"context"
	"sync"
	"time"
)

// RefreshEvent notes that a contact's status or timeline inputs changed and
// dependent views should re-pull.
type RefreshEvent struct {
	ContactID string    `json:"contact_id"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// RefreshBus decouples the lifecycle engine from whatever consumes refresh
// signals (log subscribers, websocket pushers).
type RefreshBus struct {
	events chan *RefreshEvent
	subs   []func(*RefreshEvent)
	mu     sync.RWMutex
}

// NewRefreshBus creates a new refresh bus.
func NewRefreshBus() *RefreshBus {
	return &RefreshBus{
		events: make(chan *RefreshEvent, 100),
	}
}

// ContactChanged publishes a refresh signal. Signals are best-effort: if the
// buffer is full the event is dropped rather than blocking a status write.
func (b *RefreshBus) ContactChanged(contactID, source string) {
	event := &RefreshEvent{
		ContactID: contactID,
		Source:    source,
		Timestamp: time.Now(),
	}
	select {
	case b.events <- event:
	default:
	}
}

// Subscribe registers a callback invoked for every dispatched event.
func (b *RefreshBus) Subscribe(callback func(*RefreshEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs = append(b.subs, callback)
}

// Dispatch runs the event dispatcher until the context is cancelled.
// This should be run as a goroutine.
func (b *RefreshBus) Dispatch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-b.events:
			b.mu.RLock()
			callbacks := make([]func(*RefreshEvent), len(b.subs))
			copy(callbacks, b.subs)
			b.mu.RUnlock()

			for _, cb := range callbacks {
				cb(event)
			}
		}
	}
}

// Pending returns the number of undelivered events.
func (b *RefreshBus) Pending() int {
	return len(b.events)
}
