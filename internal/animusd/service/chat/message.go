// Package chat holds the conversation wire types shared by the model,
// tool and agent modules.
package chat

import (
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single message in a conversation history.
type Message struct {
	// Role is the sender role (system/user/assistant/tool).
	Role Role `json:"role"`

	// Content is the text content of the message.
	Content string `json:"content"`

	// ToolCalls are tool invocations requested by the assistant.
	// Only present when Role == RoleAssistant.
	ToolCalls []*ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID back-references the tool call this message answers.
	// Only present when Role == RoleTool.
	ToolCallID string `json:"tool_call_id,omitempty"`

	// CreatedAt is when this message was created.
	CreatedAt time.Time `json:"created_at"`
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) *Message {
	return &Message{Role: RoleSystem, Content: content, CreatedAt: time.Now()}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content, CreatedAt: time.Now()}
}

// NewToolMessage creates a tool result message bound to a tool call ID.
func NewToolMessage(toolCallID, content string) *Message {
	return &Message{
		Role:       RoleTool,
		Content:    content,
		ToolCallID: toolCallID,
		CreatedAt:  time.Now(),
	}
}

// ToolCall is a model's request to execute a tool.
type ToolCall struct {
	// ID is the unique identifier for the tool call.
	ID string `json:"id"`
	// Name is the tool name to invoke.
	Name string `json:"name"`
	// Arguments holds the decoded tool arguments.
	Arguments map[string]interface{} `json:"arguments"`
}

// Usage counts tokens reported by a model.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add accumulates other into u.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}
