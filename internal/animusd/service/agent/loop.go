package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kiosk404/animus/internal/animusd/service/chat"
	"github.com/kiosk404/animus/internal/animusd/service/event"
	"github.com/kiosk404/animus/internal/animusd/service/model"
	"github.com/kiosk404/animus/internal/animusd/service/tool"
	"github.com/kiosk404/animus/pkg/logger"
)

const moduleName = "agent"

// Loop drives the bounded conversation turn loop: call the model, run
// any tool calls it asked for, feed the results back, repeat until the
// model stops asking or the turn budget runs out.
type Loop struct {
	models *model.Registry
	tools  *tool.Dispatcher
	events *event.Bus
}

func NewLoop(models *model.Registry, tools *tool.Dispatcher, events *event.Bus) *Loop {
	return &Loop{models: models, tools: tools, events: events}
}

// Run executes one agent run for the given input. It never returns a Go
// error: any failure, including a panic in a provider, degrades into a
// Result carrying the error text.
func (l *Loop) Run(ctx context.Context, def Definition, rc RunContext, input string) (res *Result) {
	res = &Result{}
	runID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			logger.WarnX(moduleName, "run %s for agent %q panicked: %v", runID, def.ID, r)
			res.Output = ""
			res.Error = fmt.Sprintf("agent run panicked: %v", r)
		}
		l.emit(ctx, event.AgentRunComplete, event.AgentRunCompletePayload{
			RunID:   runID,
			AgentID: def.ID,
			Result:  res,
		})
	}()

	l.emit(ctx, event.AgentRunStart, event.AgentRunPayload{RunID: runID, AgentID: def.ID, Input: input})

	provider, ref, err := l.models.Resolve(def.Model)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	maxTurns := def.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	history := make([]*chat.Message, 0, maxTurns*2+2)
	if def.SystemPrompt != "" {
		history = append(history, chat.NewSystemMessage(def.SystemPrompt))
	}
	history = append(history, chat.NewUserMessage(input))

	defs := l.tools.Definitions(def.Tools)

	for turn := 1; turn <= maxTurns; turn++ {
		res.Turns = turn

		resp, err := provider.Chat(ctx, &model.ChatRequest{
			Model:    ref.ModelID,
			Messages: history,
			Tools:    defs,
		})
		if err != nil {
			res.Error = err.Error()
			return res
		}

		res.Usage.Add(resp.Usage)
		history = append(history, resp.Message)

		l.emit(ctx, event.AgentTurn, event.AgentTurnPayload{
			AgentID:      def.ID,
			Turn:         turn,
			FinishReason: string(resp.FinishReason),
		})

		if resp.FinishReason != model.FinishToolCalls || len(resp.Message.ToolCalls) == 0 {
			res.Output = resp.Message.Content
			return res
		}

		for _, call := range resp.Message.ToolCalls {
			l.emit(ctx, event.AgentToolCall, event.AgentToolPayload{
				AgentID:    def.ID,
				ToolName:   call.Name,
				ToolCallID: call.ID,
			})
			out := l.tools.Execute(ctx, call, &tool.ExecContext{
				AgentID:    def.ID,
				ChannelID:  rc.ChannelID,
				ToolCallID: call.ID,
			})
			history = append(history, chat.NewToolMessage(call.ID, out.Output))
		}
	}

	// Turn budget exhausted while the model still wanted tools. Surface
	// the last assistant text we have, which may be empty.
	logger.WarnX(moduleName, "agent %q hit max turns (%d) without a final answer", def.ID, maxTurns)
	res.MaxTurnsReached = true
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == chat.RoleAssistant && history[i].Content != "" {
			res.Output = history[i].Content
			break
		}
	}
	return res
}

func (l *Loop) emit(ctx context.Context, name string, payload interface{}) {
	if l.events != nil {
		l.events.Emit(ctx, name, payload)
	}
}
