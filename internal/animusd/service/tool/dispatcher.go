package tool

import (
	"context"
	"fmt"

	"github.com/kiosk404/animus/internal/animusd/service/chat"
	"github.com/kiosk404/animus/pkg/logger"
)

// Dispatcher maps tool-call names to registered tools and executes them.
// The map is built at construction and read-only afterwards: Execute never
// returns an error, and never panics, regardless of what a tool does.
type Dispatcher struct {
	tools map[string]Tool
	order []string
}

// NewDispatcher builds a dispatcher from the given registrations. A
// duplicate name is logged and the later registration wins, mirroring the
// registry's override semantics.
func NewDispatcher(regs []Registration) *Dispatcher {
	d := &Dispatcher{tools: make(map[string]Tool, len(regs))}
	for _, r := range regs {
		if _, exists := d.tools[r.Name]; exists {
			logger.WarnX("tool", "tool %q registered twice, keeping the later registration", r.Name)
		} else {
			d.order = append(d.order, r.Name)
		}
		d.tools[r.Name] = r.Tool
	}
	return d
}

// Execute looks up the tool by exact name and runs it. Unknown names,
// returned errors and panics all become failure Results; the call itself
// always resolves.
func (d *Dispatcher) Execute(ctx context.Context, call *chat.ToolCall, ec *ExecContext) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.WarnX("tool", "tool %q panicked: %v", call.Name, r)
			res = Fail(fmt.Sprintf("tool %q panicked: %v", call.Name, r))
		}
	}()

	t, ok := d.tools[call.Name]
	if !ok {
		return Fail(fmt.Sprintf("unknown tool %q", call.Name))
	}

	result, err := t.Execute(ctx, call.Arguments, ec)
	if err != nil {
		return Fail(err.Error())
	}
	if result == nil {
		return Fail(fmt.Sprintf("tool %q returned no result", call.Name))
	}
	return result
}

// Definitions returns callable-free definitions. With an allow-list, only
// the named tools that exist are returned, preserving the allow-list's
// order; unknown names are silently omitted. Without one, all registered
// tools are returned in registration order.
func (d *Dispatcher) Definitions(allowList []string) []Definition {
	names := allowList
	if names == nil {
		names = d.order
	}

	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		t, ok := d.tools[name]
		if !ok {
			continue
		}
		defs = append(defs, Definition{
			Name:        name,
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// Len returns the number of registered tools.
func (d *Dispatcher) Len() int {
	return len(d.tools)
}
