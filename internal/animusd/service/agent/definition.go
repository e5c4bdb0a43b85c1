package agent

import (
	"github.com/kiosk404/animus/internal/animusd/service/chat"
	"github.com/kiosk404/animus/internal/pkg/options"
)

// DefaultMaxTurns bounds an agent run when the definition does not set
// its own limit.
const DefaultMaxTurns = 10

// Definition is the static description of an agent: its persona and
// the resources a run of it may touch.
type Definition struct {
	ID           string
	Name         string
	Description  string
	SystemPrompt string
	// Model holds a "provider/model-id" reference resolved against the
	// model registry at run time. Empty means the registry default.
	Model    string
	MaxTurns int
	// Tools is the allow-list of tool names exposed to the model.
	// A nil slice exposes every registered tool.
	Tools []string
}

// DefinitionFromOptions maps a configured agent entry onto a Definition.
func DefinitionFromOptions(id string, cfg options.AgentConfig) Definition {
	def := Definition{
		ID:           id,
		Name:         cfg.Name,
		Description:  cfg.Description,
		SystemPrompt: cfg.SystemPrompt,
		Model:        cfg.DefaultModel,
		MaxTurns:     cfg.MaxTurns,
		Tools:        cfg.Tools,
	}
	if def.Name == "" {
		def.Name = id
	}
	if def.MaxTurns <= 0 {
		def.MaxTurns = DefaultMaxTurns
	}
	return def
}

// Result is the outcome of a single agent run. Runs never surface a Go
// error to the caller, failures degrade into Error plus an empty Output.
type Result struct {
	Output          string
	Error           string
	Turns           int
	MaxTurnsReached bool
	Usage           chat.Usage
}

// RunContext carries the identity of the conversation that triggered
// the run, threaded through tool executions and events.
type RunContext struct {
	AgentID   string
	ChannelID string
}
