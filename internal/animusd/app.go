// Package animusd assembles and runs the animus daemon: plugin lifecycle,
// package reconciliation, the agent loop, the message router and the admin
// server, composed over a shared event bus.
package animusd

import (
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/kiosk404/animus/internal/animusd/config"
	"github.com/kiosk404/animus/internal/animusd/options"
	"github.com/kiosk404/animus/pkg/app"
	"github.com/kiosk404/animus/pkg/logger"
)

const AppName = "animusd"

// NewApp builds the animusd command.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	return app.NewApp(AppName,
		basename,
		app.WithOptions(opts),
		app.WithDescription(heredoc.Doc(`
			The animus daemon hosts a pluggable chat-agent runtime.

			Channels, language models, tools and storage are all plugins
			selected by the configuration file; the daemon reconciles the
			declared plugin set, initializes it in dependency order and
			routes channel messages through the agent loop.`)),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)
}

func run(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		cfg, err := config.Load(app.ConfigFile(), opts)
		if err != nil {
			return err
		}

		logPath := cfg.RuntimeOptions.LogFile
		if logPath == "" {
			logPath = filepath.Join(cfg.RuntimeOptions.DataDir, fmt.Sprintf("%s.log", basename))
		}
		if err := logger.InitLog(logPath); err != nil {
			return err
		}
		defer logger.FlushLog()
		if err := logger.SetLevel(cfg.RuntimeOptions.LogLevel); err != nil {
			return err
		}

		return Run(cfg)
	}
}
