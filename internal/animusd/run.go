package animusd

import (
	"github.com/kiosk404/animus/internal/animusd/config"
)

// Run boots the runtime from the given configuration and blocks until
// shutdown completes.
func Run(cfg *config.Config) error {
	server, err := createRuntimeServer(cfg)
	if err != nil {
		return err
	}

	return server.PrepareRun().Run()
}
