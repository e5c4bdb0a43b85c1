// Package tool defines the callable-tool contract and the dispatcher that
// executes tool calls with uniform failure containment.
package tool

import (
	"context"
)

// Tool is the capability interface of a single callable tool.
type Tool interface {
	// Description is the human/model readable summary of what the tool does.
	Description() string

	// Parameters is the JSON-schema-shaped parameter description.
	Parameters() map[string]interface{}

	// Execute runs the tool. Implementations should return an error for
	// execution failures; the dispatcher converts it into a failure Result.
	Execute(ctx context.Context, args map[string]interface{}, ec *ExecContext) (*Result, error)
}

// ExecContext carries the identifiers of the run a tool call belongs to.
type ExecContext struct {
	AgentID    string
	ChannelID  string
	ToolCallID string
}

// Result is the structured outcome of a tool execution.
type Result struct {
	// Success is false for unknown tools and failed executions.
	Success bool `json:"success"`
	// Output is the text fed back into the conversation.
	Output string `json:"output"`
	// Artifacts are optional named byte blobs produced by the tool.
	Artifacts map[string][]byte `json:"-"`
}

// Ok builds a successful Result with the given output text.
func Ok(output string) *Result {
	return &Result{Success: true, Output: output}
}

// Fail builds a failure Result with the given output text.
func Fail(output string) *Result {
	return &Result{Success: false, Output: output}
}

// Definition is the callable-free description of a registered tool, handed
// to model providers.
type Definition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// Registration pairs a tool name with its implementation. Tool plugins
// surface their tools through the Provider interface.
type Registration struct {
	Name string
	Tool Tool
}

// Provider is implemented by plugins that contribute tools. The runtime
// probes registered plugins for it while wiring the dispatcher.
type Provider interface {
	Tools() []Registration
}
