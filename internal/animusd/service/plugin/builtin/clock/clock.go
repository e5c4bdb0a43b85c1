// Package clock provides the built-in clock plugin: a single tool that
// reports the current time.
package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/kiosk404/animus/internal/animusd/service/plugin"
	"github.com/kiosk404/animus/internal/animusd/service/tool"
)

const (
	PluginName    = "clock"
	pluginVersion = "1.0.0"
	toolName      = "current_time"
)

// Factory creates the clock plugin.
func Factory(args plugin.Args) (plugin.Plugin, error) {
	return &Clock{
		Base: plugin.Base{
			PluginName:    PluginName,
			PluginVersion: pluginVersion,
			PluginType:    plugin.TypeTool,
			Instance:      args.InstanceID(),
		},
		timezone: args.String("timezone", "Local"),
		now:      time.Now,
	}, nil
}

// Clock is a tool plugin exposing the current time in a configured
// timezone.
type Clock struct {
	plugin.Base

	timezone string
	loc      *time.Location

	// now is replaced in tests.
	now func() time.Time
}

func (c *Clock) Init(_ context.Context, _ *plugin.Context) error {
	loc, err := time.LoadLocation(c.timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.timezone, err)
	}
	c.loc = loc
	return nil
}

func (c *Clock) Destroy(_ context.Context) error { return nil }

// Tools implements tool.Provider.
func (c *Clock) Tools() []tool.Registration {
	return []tool.Registration{{Name: toolName, Tool: &timeTool{clock: c}}}
}

type timeTool struct {
	clock *Clock
}

func (t *timeTool) Description() string {
	return "Returns the current date and time."
}

func (t *timeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *timeTool) Execute(_ context.Context, _ map[string]interface{}, _ *tool.ExecContext) (*tool.Result, error) {
	now := t.clock.now()
	if t.clock.loc != nil {
		now = now.In(t.clock.loc)
	}
	return tool.Ok(now.Format(time.RFC1123)), nil
}

var (
	_ plugin.Plugin = (*Clock)(nil)
	_ tool.Provider = (*Clock)(nil)
)
