package app

import (
	"github.com/spf13/pflag"
)

const defaultConfigFile = "configs/animusd.yaml"

var configFile string

func addConfigFlag(fs *pflag.FlagSet) {
	fs.StringVarP(&configFile, "config", "c", defaultConfigFile,
		"Path to the configuration file.")
}

// ConfigFile returns the configuration file path selected by flags.
func ConfigFile() string {
	return configFile
}
