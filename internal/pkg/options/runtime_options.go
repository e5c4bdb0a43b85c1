package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// RuntimeOptions configures the runtime itself: data locations, plugin
// package reconciliation and auto-update gating.
type RuntimeOptions struct {
	// DataDir is the root directory for runtime state (stores, update state).
	DataDir string `json:"data-dir" mapstructure:"dataDir"`

	// LogFile is the daemon log path. Empty means stdout only.
	LogFile string `json:"log-file" mapstructure:"logFile"`

	// LogLevel is the minimum level emitted: debug/info/warn/error.
	LogLevel string `json:"log-level" mapstructure:"logLevel"`

	// PluginAutoUpdate enables the time-gated update path during sync.
	PluginAutoUpdate bool `json:"plugin-auto-update" mapstructure:"pluginAutoUpdate"`

	// PluginUpdateIntervalHours is the minimum wall-clock gap between
	// automatic plugin updates.
	PluginUpdateIntervalHours float64 `json:"plugin-update-interval-hours" mapstructure:"pluginUpdateIntervalHours"`

	// PluginSearchPaths are directories scanned for installed plugin bundles.
	PluginSearchPaths []string `json:"plugin-search-paths" mapstructure:"pluginSearchPaths"`

	// PluginInstallCommand is the command invoked to install plugin
	// packages; package names are appended as arguments. Empty disables
	// installation, leaving unresolved packages in the failed list.
	PluginInstallCommand []string `json:"plugin-install-command" mapstructure:"pluginInstallCommand"`
}

// NewRuntimeOptions returns RuntimeOptions with defaults applied.
func NewRuntimeOptions() *RuntimeOptions {
	return &RuntimeOptions{
		DataDir:                   "data",
		LogLevel:                  "info",
		PluginAutoUpdate:          false,
		PluginUpdateIntervalHours: 24,
	}
}

// Validate checks RuntimeOptions fields.
func (o *RuntimeOptions) Validate() []error {
	var errs []error
	if o.DataDir == "" {
		errs = append(errs, fmt.Errorf("runtime.dataDir must not be empty"))
	}
	if o.PluginUpdateIntervalHours < 0 {
		errs = append(errs, fmt.Errorf("runtime.pluginUpdateIntervalHours must not be negative"))
	}
	switch o.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid runtime.logLevel %q", o.LogLevel))
	}
	return errs
}

// AddFlags adds flags for the runtime options.
func (o *RuntimeOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.DataDir, "runtime.data-dir", o.DataDir, "Root directory for runtime state.")
	fs.StringVar(&o.LogFile, "runtime.log-file", o.LogFile, "Daemon log file path.")
	fs.StringVar(&o.LogLevel, "runtime.log-level", o.LogLevel, "Minimum log level: debug/info/warn/error.")
	fs.BoolVar(&o.PluginAutoUpdate, "runtime.plugin-auto-update", o.PluginAutoUpdate, "Enable automatic plugin package updates.")
	fs.Float64Var(&o.PluginUpdateIntervalHours, "runtime.plugin-update-interval-hours", o.PluginUpdateIntervalHours, "Minimum hours between automatic plugin updates.")
	fs.StringSliceVar(&o.PluginSearchPaths, "runtime.plugin-search-paths", o.PluginSearchPaths, "Directories scanned for installed plugin bundles.")
}
