package event

// Well-known runtime event names. Payload shapes are documented next to the
// emitting module.
const (
	// RuntimeReady fires once boot is complete. Payload: RuntimePayload.
	RuntimeReady = "runtime:ready"
	// RuntimeShutdown fires at the start of teardown. Payload: RuntimePayload.
	RuntimeShutdown = "runtime:shutdown"

	// PluginLoaded fires per registered plugin. Payload: PluginPayload.
	PluginLoaded = "plugin:loaded"
	// PluginDestroyed fires per destroyed plugin. Payload: PluginPayload.
	PluginDestroyed = "plugin:destroyed"

	// MessageIncoming fires when a channel message enters the router.
	MessageIncoming = "message:incoming"
	// MessageOutgoing fires after a reply is handed to a channel.
	MessageOutgoing = "message:outgoing"

	// AgentRunStart fires when an agent run begins. Payload: AgentRunPayload.
	AgentRunStart = "agent:run:start"
	// AgentTurn fires after each model call. Payload: AgentTurnPayload.
	AgentTurn = "agent:turn"
	// AgentToolCall fires before each tool execution. Payload: AgentToolPayload.
	AgentToolCall = "agent:tool:call"
	// AgentRunComplete fires when a run finishes, on every terminal path.
	AgentRunComplete = "agent:run:complete"
)

// RuntimePayload is the (empty) payload of runtime lifecycle events.
type RuntimePayload struct{}

// PluginPayload accompanies plugin:loaded and plugin:destroyed.
type PluginPayload struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// MessagePayload accompanies message:incoming and message:outgoing.
type MessagePayload struct {
	ChannelID string `json:"channelId"`
	MessageID string `json:"messageId"`
}

// AgentRunPayload accompanies agent:run:start.
type AgentRunPayload struct {
	RunID   string `json:"runId"`
	AgentID string `json:"agentId"`
	Input   string `json:"input"`
}

// AgentTurnPayload accompanies agent:turn.
type AgentTurnPayload struct {
	AgentID      string `json:"agentId"`
	Turn         int    `json:"turn"`
	FinishReason string `json:"finishReason"`
}

// AgentToolPayload accompanies agent:tool:call.
type AgentToolPayload struct {
	AgentID    string `json:"agentId"`
	ToolName   string `json:"toolName"`
	ToolCallID string `json:"toolCallId"`
}

// AgentRunCompletePayload accompanies agent:run:complete.
type AgentRunCompletePayload struct {
	RunID   string      `json:"runId"`
	AgentID string      `json:"agentId"`
	Result  interface{} `json:"result"`
}
