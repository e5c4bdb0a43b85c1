package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// AgentsOptions configures the agent definitions available to the runtime
// and selects which one the message router binds inbound traffic to.
type AgentsOptions struct {
	// Default is the agent ID the message router uses for inbound messages.
	// Empty with exactly one entry means that entry.
	Default string `json:"default" mapstructure:"default"`

	// Entries holds agent definitions keyed by agent ID.
	Entries map[string]AgentConfig `json:"entries" mapstructure:"entries"`
}

// AgentConfig is one declared agent definition.
type AgentConfig struct {
	Name         string   `json:"name" mapstructure:"name"`
	Description  string   `json:"description" mapstructure:"description"`
	SystemPrompt string   `json:"systemPrompt" mapstructure:"systemPrompt"`
	DefaultModel string   `json:"defaultModel" mapstructure:"defaultModel"`
	MaxTurns     int      `json:"maxTurns" mapstructure:"maxTurns"`
	Tools        []string `json:"tools" mapstructure:"tools"`
}

// NewAgentsOptions returns a new instance of AgentsOptions.
func NewAgentsOptions() *AgentsOptions {
	return &AgentsOptions{
		Entries: make(map[string]AgentConfig),
	}
}

// Validate checks AgentsOptions fields.
func (o *AgentsOptions) Validate() []error {
	var errs []error
	if o.Default != "" {
		if _, ok := o.Entries[o.Default]; !ok {
			errs = append(errs, fmt.Errorf("agents.default %q has no matching entry", o.Default))
		}
	}
	for id, a := range o.Entries {
		if a.MaxTurns < 0 {
			errs = append(errs, fmt.Errorf("agents.entries.%s: maxTurns must not be negative", id))
		}
	}
	return errs
}

// AddFlags adds flags for the agents options.
func (o *AgentsOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Default, "agents.default", o.Default, "Agent ID bound to inbound channel messages.")
}
