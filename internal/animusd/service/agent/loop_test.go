package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/animus/internal/animusd/service/chat"
	"github.com/kiosk404/animus/internal/animusd/service/event"
	"github.com/kiosk404/animus/internal/animusd/service/model"
	"github.com/kiosk404/animus/internal/animusd/service/tool"
	"github.com/kiosk404/animus/internal/pkg/options"
)

// scriptedProvider returns canned responses in sequence.
type scriptedProvider struct {
	responses []*model.ChatResponse
	requests  []*model.ChatRequest
	err       error
	boom      bool
}

func (s *scriptedProvider) Chat(_ context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	if s.boom {
		panic("provider exploded")
	}
	if s.err != nil {
		return nil, s.err
	}
	s.requests = append(s.requests, req)
	idx := len(s.requests) - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return s.responses[idx], nil
}

func (s *scriptedProvider) ChatStream(_ context.Context, _ *model.ChatRequest) (<-chan *model.ChatChunk, error) {
	return nil, errors.New("not scripted")
}

func (s *scriptedProvider) ListModels(_ context.Context) ([]model.Info, error) {
	return nil, nil
}

func assistantText(text string, usage chat.Usage) *model.ChatResponse {
	return &model.ChatResponse{
		Message:      &chat.Message{Role: chat.RoleAssistant, Content: text},
		FinishReason: model.FinishStop,
		Usage:        usage,
	}
}

func assistantToolCall(callID, toolName string, usage chat.Usage) *model.ChatResponse {
	return &model.ChatResponse{
		Message: &chat.Message{
			Role: chat.RoleAssistant,
			ToolCalls: []*chat.ToolCall{{
				ID:        callID,
				Name:      toolName,
				Arguments: map[string]interface{}{"text": "ping"},
			}},
		},
		FinishReason: model.FinishToolCalls,
		Usage:        usage,
	}
}

type echoTool struct{}

func (echoTool) Description() string { return "echoes" }

func (echoTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}

func (echoTool) Execute(_ context.Context, args map[string]interface{}, _ *tool.ExecContext) (*tool.Result, error) {
	text, _ := args["text"].(string)
	return tool.Ok("echo:" + text), nil
}

func newLoop(p model.Provider, regs []tool.Registration, bus *event.Bus) *Loop {
	models := model.NewRegistry()
	_ = models.Register("scripted", p)
	return NewLoop(models, tool.NewDispatcher(regs), bus)
}

func TestRunDirectAnswer(t *testing.T) {
	p := &scriptedProvider{responses: []*model.ChatResponse{
		assistantText("hello there", chat.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}),
	}}
	loop := newLoop(p, nil, nil)

	res := loop.Run(context.Background(), Definition{ID: "a", SystemPrompt: "be nice", MaxTurns: 3}, RunContext{}, "hi")

	assert.Equal(t, "hello there", res.Output)
	assert.Empty(t, res.Error)
	assert.Equal(t, 1, res.Turns)
	assert.False(t, res.MaxTurnsReached)
	assert.Equal(t, 15, res.Usage.TotalTokens)

	// System prompt seeds the history ahead of the user input.
	require.Len(t, p.requests, 1)
	require.Len(t, p.requests[0].Messages, 2)
	assert.Equal(t, chat.RoleSystem, p.requests[0].Messages[0].Role)
	assert.Equal(t, chat.RoleUser, p.requests[0].Messages[1].Role)
}

func TestRunToolCallRoundTrip(t *testing.T) {
	p := &scriptedProvider{responses: []*model.ChatResponse{
		assistantToolCall("call-1", "echo", chat.Usage{TotalTokens: 7}),
		assistantText("done", chat.Usage{TotalTokens: 3}),
	}}
	loop := newLoop(p, []tool.Registration{{Name: "echo", Tool: echoTool{}}}, nil)

	res := loop.Run(context.Background(), Definition{ID: "a", MaxTurns: 5}, RunContext{ChannelID: "cli"}, "hi")

	assert.Equal(t, "done", res.Output)
	assert.Equal(t, 2, res.Turns)
	assert.Equal(t, 10, res.Usage.TotalTokens)

	// Second request must carry the assistant tool-call message and the
	// tool result tagged with the originating call ID.
	require.Len(t, p.requests, 2)
	msgs := p.requests[1].Messages
	last := msgs[len(msgs)-1]
	assert.Equal(t, chat.RoleTool, last.Role)
	assert.Equal(t, "call-1", last.ToolCallID)
	assert.Equal(t, "echo:ping", last.Content)
}

func TestRunUnknownToolFeedsFailureBack(t *testing.T) {
	p := &scriptedProvider{responses: []*model.ChatResponse{
		assistantToolCall("call-1", "ghost", chat.Usage{}),
		assistantText("recovered", chat.Usage{}),
	}}
	loop := newLoop(p, nil, nil)

	res := loop.Run(context.Background(), Definition{ID: "a", MaxTurns: 5}, RunContext{}, "hi")

	assert.Equal(t, "recovered", res.Output)
	msgs := p.requests[1].Messages
	last := msgs[len(msgs)-1]
	assert.Equal(t, chat.RoleTool, last.Role)
	assert.Contains(t, last.Content, `unknown tool "ghost"`)
}

func TestRunMaxTurnsReached(t *testing.T) {
	p := &scriptedProvider{responses: []*model.ChatResponse{
		assistantToolCall("call-1", "echo", chat.Usage{TotalTokens: 1}),
	}}
	loop := newLoop(p, []tool.Registration{{Name: "echo", Tool: echoTool{}}}, nil)

	res := loop.Run(context.Background(), Definition{ID: "a", MaxTurns: 2}, RunContext{}, "hi")

	assert.True(t, res.MaxTurnsReached)
	assert.Equal(t, 2, res.Turns)
	// The model never produced assistant text, so the output stays empty.
	assert.Empty(t, res.Output)
	assert.Equal(t, 2, res.Usage.TotalTokens)
}

func TestRunProviderErrorDegrades(t *testing.T) {
	p := &scriptedProvider{err: errors.New("rate limited")}
	loop := newLoop(p, nil, nil)

	res := loop.Run(context.Background(), Definition{ID: "a"}, RunContext{}, "hi")

	assert.Empty(t, res.Output)
	assert.Equal(t, "rate limited", res.Error)
}

func TestRunProviderPanicDegrades(t *testing.T) {
	p := &scriptedProvider{boom: true}
	loop := newLoop(p, nil, nil)

	var res *Result
	assert.NotPanics(t, func() {
		res = loop.Run(context.Background(), Definition{ID: "a"}, RunContext{}, "hi")
	})
	assert.Empty(t, res.Output)
	assert.Contains(t, res.Error, "panicked")
}

func TestRunUnknownModelRefDegrades(t *testing.T) {
	loop := NewLoop(model.NewRegistry(), tool.NewDispatcher(nil), nil)

	res := loop.Run(context.Background(), Definition{ID: "a", Model: "ghost/model"}, RunContext{}, "hi")

	assert.Empty(t, res.Output)
	assert.NotEmpty(t, res.Error)
}

func TestRunEmitsLifecycleEvents(t *testing.T) {
	bus := event.NewBus()
	var names []string
	bus.On(event.Wildcard, "probe", func(_ context.Context, name string, _ interface{}) error {
		names = append(names, name)
		return nil
	})

	p := &scriptedProvider{responses: []*model.ChatResponse{
		assistantToolCall("call-1", "echo", chat.Usage{}),
		assistantText("done", chat.Usage{}),
	}}
	loop := newLoop(p, []tool.Registration{{Name: "echo", Tool: echoTool{}}}, bus)

	loop.Run(context.Background(), Definition{ID: "a", MaxTurns: 5}, RunContext{}, "hi")

	assert.Equal(t, []string{
		event.AgentRunStart,
		event.AgentTurn,
		event.AgentToolCall,
		event.AgentTurn,
		event.AgentRunComplete,
	}, names)
}

func TestDefinitionFromOptionsDefaults(t *testing.T) {
	def := DefinitionFromOptions("helper", options.AgentConfig{
		Description: "test agent",
	})

	assert.Equal(t, "helper", def.ID)
	assert.Equal(t, "helper", def.Name)
	assert.Equal(t, DefaultMaxTurns, def.MaxTurns)
	assert.Empty(t, def.Model)
}
