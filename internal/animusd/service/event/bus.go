// Package event implements the runtime's typed publish/subscribe bus.
//
// Delivery is strictly sequential: handlers bound to the exact event name
// run first in registration order, then wildcard handlers. A failing handler
// is logged and never blocks delivery to the rest. Determinism is the point;
// there is no concurrent fan-out and no backpressure.
package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/kiosk404/animus/pkg/logger"
)

// Wildcard subscribes a handler to every event.
const Wildcard = "*"

// Handler receives the event name and its payload. A returned error is
// logged by the bus and otherwise ignored.
type Handler func(ctx context.Context, event string, payload interface{}) error

type registration struct {
	id string
	fn Handler
}

// Bus is the runtime event dispatcher. Handler sets are only mutated during
// load and teardown phases; steady-state emit traffic reads them.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]registration
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]registration),
	}
}

// On registers fn for the given event under a caller-chosen handler ID.
// Go functions are not comparable, so the ID is what makes duplicate
// registration idempotent: re-registering the same (event, id) pair replaces
// the handler in place, keeping its original position in delivery order.
func (b *Bus) On(event, id string, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[event]
	for i, r := range regs {
		if r.id == id {
			regs[i].fn = fn
			return
		}
	}
	b.handlers[event] = append(regs, registration{id: id, fn: fn})
}

// Off removes the handler registered under (event, id). Unknown pairs are
// a no-op.
func (b *Bus) Off(event, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[event]
	for i, r := range regs {
		if r.id == id {
			b.handlers[event] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Emit delivers the payload to every handler bound to the exact event name,
// in registration order, then to wildcard handlers. Emit returns only after
// every handler has run. A panicking or erroring handler is logged per
// handler and delivery continues.
func (b *Bus) Emit(ctx context.Context, event string, payload interface{}) {
	b.mu.RLock()
	regs := make([]registration, 0, len(b.handlers[event])+len(b.handlers[Wildcard]))
	regs = append(regs, b.handlers[event]...)
	if event != Wildcard {
		regs = append(regs, b.handlers[Wildcard]...)
	}
	b.mu.RUnlock()

	for _, r := range regs {
		if err := b.invoke(ctx, r, event, payload); err != nil {
			logger.WarnX("event", "handler %q failed for event %q: %v", r.id, event, err)
		}
	}
}

func (b *Bus) invoke(ctx context.Context, r registration, event string, payload interface{}) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()
	return r.fn(ctx, event, payload)
}

// HandlerCount returns the number of handlers bound to the exact event name.
func (b *Bus) HandlerCount(event string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[event])
}

// RemoveAll clears every registration. Used only at shutdown.
func (b *Bus) RemoveAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[string][]registration)
}
