// Package posixsignal provides a shutdown manager that triggers on SIGINT
// and SIGTERM.
package posixsignal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kiosk404/animus/pkg/shutdown"
	"github.com/kiosk404/animus/pkg/utils/safego"
)

// Name identifies this manager in shutdown callbacks.
const Name = "PosixSignalManager"

// PosixSignalManager waits for one of the configured signals and then starts
// the graceful shutdown sequence.
type PosixSignalManager struct {
	signals []os.Signal
}

// NewPosixSignalManager creates a manager for the given signals.
// Without arguments it watches SIGINT and SIGTERM.
func NewPosixSignalManager(sig ...os.Signal) *PosixSignalManager {
	if len(sig) == 0 {
		sig = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	return &PosixSignalManager{signals: sig}
}

// Name implements shutdown.Manager.
func (m *PosixSignalManager) Name() string {
	return Name
}

// Start implements shutdown.Manager.
func (m *PosixSignalManager) Start(gs *shutdown.GracefulShutdown) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, m.signals...)

	safego.Go(context.Background(), func() {
		<-ch
		signal.Stop(ch)
		gs.StartShutdown(m)
	})
	return nil
}
