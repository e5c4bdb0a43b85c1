// Package shutdown coordinates graceful process teardown. Managers watch for
// a trigger (a POSIX signal, typically) and callbacks run the actual cleanup.
package shutdown

import (
	"sync"
)

// Callback is invoked once when shutdown is triggered. The argument is the
// name of the manager that fired.
type Callback interface {
	OnShutdown(trigger string) error
}

// Func adapts a plain function to the Callback interface.
type Func func(trigger string) error

// OnShutdown implements Callback.
func (f Func) OnShutdown(trigger string) error {
	return f(trigger)
}

// Manager watches for a shutdown condition and reports it back through
// StartShutdown when it occurs.
type Manager interface {
	Name() string
	Start(gs *GracefulShutdown) error
}

// ErrorHandler receives errors returned by callbacks during shutdown.
type ErrorHandler interface {
	OnError(err error)
}

// GracefulShutdown holds the registered managers and callbacks and drives
// them when any manager fires. A second trigger is a no-op.
type GracefulShutdown struct {
	mu        sync.Mutex
	managers  []Manager
	callbacks []Callback
	errorFn   ErrorHandler
	fired     bool
	done      chan struct{}
}

// New creates an empty GracefulShutdown.
func New() *GracefulShutdown {
	return &GracefulShutdown{
		done: make(chan struct{}),
	}
}

// AddShutdownManager registers a manager. Managers are started by Start.
func (gs *GracefulShutdown) AddShutdownManager(m Manager) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.managers = append(gs.managers, m)
}

// AddShutdownCallback registers a callback, run in registration order when
// shutdown triggers.
func (gs *GracefulShutdown) AddShutdownCallback(cb Callback) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.callbacks = append(gs.callbacks, cb)
}

// SetErrorHandler installs a sink for callback errors. Without one, errors
// are discarded by the caller's logging discipline.
func (gs *GracefulShutdown) SetErrorHandler(h ErrorHandler) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.errorFn = h
}

// Start launches every registered manager.
func (gs *GracefulShutdown) Start() error {
	gs.mu.Lock()
	managers := make([]Manager, len(gs.managers))
	copy(managers, gs.managers)
	gs.mu.Unlock()

	for _, m := range managers {
		if err := m.Start(gs); err != nil {
			return err
		}
	}
	return nil
}

// StartShutdown runs all callbacks in order. Safe to call more than once;
// only the first call has any effect.
func (gs *GracefulShutdown) StartShutdown(m Manager) {
	gs.mu.Lock()
	if gs.fired {
		gs.mu.Unlock()
		return
	}
	gs.fired = true
	callbacks := make([]Callback, len(gs.callbacks))
	copy(callbacks, gs.callbacks)
	handler := gs.errorFn
	gs.mu.Unlock()

	for _, cb := range callbacks {
		if err := cb.OnShutdown(m.Name()); err != nil && handler != nil {
			handler.OnError(err)
		}
	}
	close(gs.done)
}

// Done is closed after all callbacks have run.
func (gs *GracefulShutdown) Done() <-chan struct{} {
	return gs.done
}
