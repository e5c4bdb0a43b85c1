// Package model defines the contract between the runtime and language-model
// provider plugins. Concrete HTTP clients live behind Provider; the core
// never sees a transport.
package model

import (
	"context"

	"github.com/kiosk404/animus/internal/animusd/service/chat"
	"github.com/kiosk404/animus/internal/animusd/service/tool"
)

// FinishReason explains why a model stopped generating.
type FinishReason string

const (
	// FinishStop is a normal end of generation.
	FinishStop FinishReason = "stop"
	// FinishToolCalls means the model requests tool executions before it
	// can continue.
	FinishToolCalls FinishReason = "tool_calls"
	// FinishLength means the output hit the provider's token ceiling.
	FinishLength FinishReason = "length"
)

// ChatRequest is one model invocation.
type ChatRequest struct {
	// Model is the provider-local model identifier.
	Model string
	// Messages is the full conversation history, oldest first.
	Messages []*chat.Message
	// Tools are the definitions the model may call. Optional.
	Tools []tool.Definition
}

// ChatResponse is the model's answer to a ChatRequest.
type ChatResponse struct {
	// Message is the assistant message, including any requested tool calls.
	Message *chat.Message
	// FinishReason explains why generation stopped.
	FinishReason FinishReason
	// Usage is the token usage of this single call.
	Usage chat.Usage
}

// ChatChunk is one increment of a streaming response.
type ChatChunk struct {
	// Delta is the text appended by this chunk.
	Delta string
	// FinishReason is set on the final chunk only.
	FinishReason FinishReason
	// Usage is set on the final chunk only.
	Usage *chat.Usage
}

// Info describes one model offered by a provider.
type Info struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContextWindow int    `json:"context_window,omitempty"`
}

// Provider is the capability interface of model plugins.
type Provider interface {
	// Chat performs one blocking model call.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// ChatStream performs one model call, delivering increments on the
	// returned channel. The channel is closed after the final chunk.
	ChatStream(ctx context.Context, req *ChatRequest) (<-chan *ChatChunk, error)

	// ListModels enumerates the models this provider can serve.
	ListModels(ctx context.Context) ([]Info, error)
}
