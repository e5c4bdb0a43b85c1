package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/kiosk404/animus/internal/animusd/options"
	"github.com/kiosk404/animus/pkg/logger"
	"github.com/spf13/viper"
)

// Config is the running configuration of the animusd daemon: the typed
// options plus the raw settings tree behind the Accessor handed to plugins.
type Config struct {
	*options.Options

	// Settings is the dotted-path view over the merged configuration tree.
	Settings Accessor

	v *viper.Viper
}

// CreateConfigFromOptions builds a Config from already-populated options,
// without a backing file. Used by tests and embedded callers.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{Options: opts, Settings: NewAccessor(nil)}, nil
}

// Load reads the configuration file at path, unmarshals it over the given
// defaults and returns the combined Config. A missing file is fatal: the
// daemon cannot run without its configuration source.
func Load(path string, opts *options.Options) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration %q: %w", path, err)
	}
	if err := v.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("failed to parse configuration %q: %w", path, err)
	}

	return &Config{
		Options:  opts,
		Settings: NewAccessor(v.AllSettings()),
		v:        v,
	}, nil
}

// Watch re-reads the settings tree whenever the backing file changes and
// invokes fn with the fresh Accessor. Typed options are not re-unmarshaled;
// modules that want live values read through the Accessor.
func (c *Config) Watch(fn func(Accessor)) {
	if c.v == nil {
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("[Config] configuration file changed: %s", e.Name)
		fn(NewAccessor(c.v.AllSettings()))
	})
	c.v.WatchConfig()
}
