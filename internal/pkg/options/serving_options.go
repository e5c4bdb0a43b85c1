package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ServingOptions configures the admin HTTP surface of the daemon.
type ServingOptions struct {
	// Enabled controls whether the admin server is started at all.
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// BindAddress is the interface for the admin server.
	BindAddress string `json:"bind-address" mapstructure:"bindAddress"`

	// BindPort is the port for the admin server.
	BindPort int `json:"bind-port" mapstructure:"bindPort"`

	// Profiling exposes the pprof endpoints when true.
	Profiling bool `json:"profiling" mapstructure:"profiling"`
}

// NewServingOptions returns ServingOptions with defaults applied.
func NewServingOptions() *ServingOptions {
	return &ServingOptions{
		Enabled:     true,
		BindAddress: "127.0.0.1",
		BindPort:    11900,
		Profiling:   false,
	}
}

// Validate checks ServingOptions fields.
func (o *ServingOptions) Validate() []error {
	var errs []error
	if o.BindPort < 0 || o.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("serving.bindPort %d is out of range", o.BindPort))
	}
	return errs
}

// Addr returns the host:port pair of the admin server.
func (o *ServingOptions) Addr() string {
	return fmt.Sprintf("%s:%d", o.BindAddress, o.BindPort)
}

// AddFlags adds flags for the serving options.
func (o *ServingOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "serving.enabled", o.Enabled, "Start the admin HTTP server.")
	fs.StringVar(&o.BindAddress, "serving.bind-address", o.BindAddress, "Admin server bind address.")
	fs.IntVar(&o.BindPort, "serving.bind-port", o.BindPort, "Admin server bind port.")
	fs.BoolVar(&o.Profiling, "serving.profiling", o.Profiling, "Expose pprof endpoints on the admin server.")
}
