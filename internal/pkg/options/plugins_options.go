package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// PluginsOptions declares which plugin packages the runtime loads and carries
// their per-package configuration. The key of Entries is the package name,
// which may itself contain dots (quoted-segment lookup handles those paths).
type PluginsOptions struct {
	// Enabled controls whether the plugin system is enabled. (default: true)
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// Entries holds per-package configuration, keyed by package name.
	Entries map[string]PluginEntryConfig `json:"entries" mapstructure:"entries"`
}

// PluginEntryConfig holds the configuration of one declared plugin package.
type PluginEntryConfig struct {
	// Enabled overrides the global switch for this package.
	Enabled *bool `json:"enabled,omitempty" mapstructure:"enabled"`

	// Instances declares named instances of this package. When present, the
	// package is instantiated once per descriptor instead of once overall.
	Instances []PluginInstanceConfig `json:"instances,omitempty" mapstructure:"instances"`

	// Config is the package-level configuration passed to the factory.
	Config map[string]interface{} `json:"config,omitempty" mapstructure:"config"`
}

// PluginInstanceConfig describes a single named instance of a package.
// Its Config overlays the package-level Config for that instance.
type PluginInstanceConfig struct {
	InstanceID string                 `json:"instanceId" mapstructure:"instanceId"`
	Config     map[string]interface{} `json:"config,omitempty" mapstructure:"config"`
}

// NewPluginsOptions returns a new instance of PluginsOptions.
func NewPluginsOptions() *PluginsOptions {
	return &PluginsOptions{
		Enabled: true,
		Entries: make(map[string]PluginEntryConfig),
	}
}

// Validate checks PluginsOptions fields.
func (o *PluginsOptions) Validate() []error {
	var errs []error
	for pkg, entry := range o.Entries {
		seen := make(map[string]bool, len(entry.Instances))
		for _, inst := range entry.Instances {
			if inst.InstanceID == "" {
				errs = append(errs, fmt.Errorf("plugins.%q: instance descriptor missing instanceId", pkg))
				continue
			}
			if seen[inst.InstanceID] {
				errs = append(errs, fmt.Errorf("plugins.%q: duplicate instanceId %q", pkg, inst.InstanceID))
			}
			seen[inst.InstanceID] = true
		}
	}
	return errs
}

// AddFlags adds flags for the plugins options. Per-package configuration is
// file-only; just the global switch is exposed.
func (o *PluginsOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "plugins.enabled", o.Enabled, "Enable the plugin system.")
}
