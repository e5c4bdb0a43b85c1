// Package safego runs goroutines that survive panics in the spawned body.
package safego

import (
	"context"
	"runtime/debug"

	"github.com/kiosk404/animus/pkg/logger"
)

// Go runs fn in a new goroutine. A panic inside fn is recovered and logged
// with a stack trace instead of crashing the process.
func Go(ctx context.Context, fn func()) {
	go func() {
		defer Recover(ctx)
		fn()
	}()
}

// Recover is the deferred half of Go, exported for callers that manage
// their own goroutines.
func Recover(_ context.Context) {
	if r := recover(); r != nil {
		logger.Error("recovered panic: %v\n%s", r, debug.Stack())
	}
}
