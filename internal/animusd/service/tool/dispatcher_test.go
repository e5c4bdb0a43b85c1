package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/animus/internal/animusd/service/chat"
)

type stubTool struct {
	desc    string
	execute func(ctx context.Context, args map[string]interface{}, ec *ExecContext) (*Result, error)
}

func (s *stubTool) Description() string { return s.desc }

func (s *stubTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}

func (s *stubTool) Execute(ctx context.Context, args map[string]interface{}, ec *ExecContext) (*Result, error) {
	return s.execute(ctx, args, ec)
}

func echoTool() *stubTool {
	return &stubTool{
		desc: "echoes its input",
		execute: func(_ context.Context, args map[string]interface{}, _ *ExecContext) (*Result, error) {
			text, _ := args["text"].(string)
			return Ok(text), nil
		},
	}
}

func TestExecuteKnownTool(t *testing.T) {
	d := NewDispatcher([]Registration{{Name: "echo", Tool: echoTool()}})

	res := d.Execute(context.Background(), &chat.ToolCall{
		ID:        "call-1",
		Name:      "echo",
		Arguments: map[string]interface{}{"text": "hello"},
	}, &ExecContext{AgentID: "assistant"})

	require.True(t, res.Success)
	assert.Equal(t, "hello", res.Output)
}

func TestExecuteUnknownToolFails(t *testing.T) {
	d := NewDispatcher(nil)

	res := d.Execute(context.Background(), &chat.ToolCall{Name: "nope"}, nil)

	require.False(t, res.Success)
	assert.Contains(t, res.Output, `unknown tool "nope"`)
}

func TestExecuteErrorBecomesFailure(t *testing.T) {
	d := NewDispatcher([]Registration{{Name: "broken", Tool: &stubTool{
		desc: "always fails",
		execute: func(_ context.Context, _ map[string]interface{}, _ *ExecContext) (*Result, error) {
			return nil, errors.New("disk on fire")
		},
	}}})

	res := d.Execute(context.Background(), &chat.ToolCall{Name: "broken"}, nil)

	require.False(t, res.Success)
	assert.Equal(t, "disk on fire", res.Output)
}

func TestExecutePanicBecomesFailure(t *testing.T) {
	d := NewDispatcher([]Registration{{Name: "volatile", Tool: &stubTool{
		desc: "panics",
		execute: func(_ context.Context, _ map[string]interface{}, _ *ExecContext) (*Result, error) {
			panic("tool exploded")
		},
	}}})

	var res *Result
	assert.NotPanics(t, func() {
		res = d.Execute(context.Background(), &chat.ToolCall{Name: "volatile"}, nil)
	})
	require.False(t, res.Success)
	assert.Contains(t, res.Output, "panicked")
}

func TestExecuteNilResultBecomesFailure(t *testing.T) {
	d := NewDispatcher([]Registration{{Name: "lazy", Tool: &stubTool{
		desc: "returns nothing",
		execute: func(_ context.Context, _ map[string]interface{}, _ *ExecContext) (*Result, error) {
			return nil, nil
		},
	}}})

	res := d.Execute(context.Background(), &chat.ToolCall{Name: "lazy"}, nil)
	assert.False(t, res.Success)
}

func TestDuplicateRegistrationLaterWins(t *testing.T) {
	first := &stubTool{desc: "first", execute: func(_ context.Context, _ map[string]interface{}, _ *ExecContext) (*Result, error) {
		return Ok("first"), nil
	}}
	second := &stubTool{desc: "second", execute: func(_ context.Context, _ map[string]interface{}, _ *ExecContext) (*Result, error) {
		return Ok("second"), nil
	}}
	d := NewDispatcher([]Registration{{Name: "dup", Tool: first}, {Name: "dup", Tool: second}})

	require.Equal(t, 1, d.Len())
	res := d.Execute(context.Background(), &chat.ToolCall{Name: "dup"}, nil)
	assert.Equal(t, "second", res.Output)
}

func TestDefinitionsWithoutAllowListUsesRegistrationOrder(t *testing.T) {
	d := NewDispatcher([]Registration{
		{Name: "b", Tool: echoTool()},
		{Name: "a", Tool: echoTool()},
	})

	defs := d.Definitions(nil)
	require.Len(t, defs, 2)
	assert.Equal(t, "b", defs[0].Name)
	assert.Equal(t, "a", defs[1].Name)
}

func TestDefinitionsAllowListOrderAndUnknownOmitted(t *testing.T) {
	d := NewDispatcher([]Registration{
		{Name: "a", Tool: echoTool()},
		{Name: "b", Tool: echoTool()},
	})

	defs := d.Definitions([]string{"b", "ghost", "a"})
	require.Len(t, defs, 2)
	assert.Equal(t, "b", defs[0].Name)
	assert.Equal(t, "a", defs[1].Name)
}

func TestDefinitionsEmptyAllowListExposesNothing(t *testing.T) {
	d := NewDispatcher([]Registration{{Name: "a", Tool: echoTool()}})

	assert.Empty(t, d.Definitions([]string{}))
}
