package options

import (
	genericoptions "github.com/kiosk404/animus/internal/pkg/options"
	"github.com/kiosk404/animus/pkg/utils/json"
	"github.com/spf13/pflag"
)

// Options is the full set of animusd configuration, populated from the
// configuration file and overridable by flags.
type Options struct {
	RuntimeOptions *genericoptions.RuntimeOptions `json:"runtime"  mapstructure:"runtime"`
	ServingOptions *genericoptions.ServingOptions `json:"serving"  mapstructure:"serving"`
	PluginOptions  *genericoptions.PluginsOptions `json:"plugins"  mapstructure:"plugins"`
	AgentOptions   *genericoptions.AgentsOptions  `json:"agents"   mapstructure:"agents"`
}

// NewOptions returns Options with all sections defaulted.
func NewOptions() *Options {
	return &Options{
		RuntimeOptions: genericoptions.NewRuntimeOptions(),
		ServingOptions: genericoptions.NewServingOptions(),
		PluginOptions:  genericoptions.NewPluginsOptions(),
		AgentOptions:   genericoptions.NewAgentsOptions(),
	}
}

// AddFlags registers all section flags on the given flag set.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.RuntimeOptions.AddFlags(fs)
	o.ServingOptions.AddFlags(fs)
	o.PluginOptions.AddFlags(fs)
	o.AgentOptions.AddFlags(fs)
}

// Validate collects validation errors from every section.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.RuntimeOptions.Validate()...)
	errs = append(errs, o.ServingOptions.Validate()...)
	errs = append(errs, o.PluginOptions.Validate()...)
	errs = append(errs, o.AgentOptions.Validate()...)
	return errs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)
	return string(data)
}
