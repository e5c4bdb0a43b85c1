// Package mcptoolkit provides the built-in mcp-toolkit plugin: it connects
// to an MCP server, discovers its tools and exposes them through the
// runtime's tool contract. Multi-instance: each instance binds one server.
package mcptoolkit

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kiosk404/animus/internal/animusd/service/plugin"
	"github.com/kiosk404/animus/internal/animusd/service/tool"
	"github.com/kiosk404/animus/pkg/logger"
	"github.com/kiosk404/animus/pkg/utils/json"
	"github.com/kiosk404/animus/pkg/version"
)

const (
	PluginName    = "mcp-toolkit"
	pluginVersion = "1.0.0"
)

// Factory creates one mcp-toolkit instance from its configuration.
func Factory(args plugin.Args) (plugin.Plugin, error) {
	t := &Toolkit{
		Base: plugin.Base{
			PluginName:    PluginName,
			PluginVersion: pluginVersion,
			PluginType:    plugin.TypeTool,
			Instance:      args.InstanceID(),
		},
		transport: args.String("transport", "stdio"),
		command:   args.String("command", ""),
		url:       args.String("url", ""),
	}
	if raw, ok := args["args"].([]interface{}); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				t.args = append(t.args, s)
			}
		}
	}
	if raw, ok := args["tools"].([]interface{}); ok {
		t.allowed = make(map[string]bool, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				t.allowed[s] = true
			}
		}
	}
	switch t.transport {
	case "stdio":
		if t.command == "" {
			return nil, fmt.Errorf("mcp-toolkit: stdio transport requires a command")
		}
	case "sse":
		if t.url == "" {
			return nil, fmt.Errorf("mcp-toolkit: sse transport requires a url")
		}
	default:
		return nil, fmt.Errorf("mcp-toolkit: unknown transport %q", t.transport)
	}
	return t, nil
}

// Toolkit bridges one MCP server into the tool registry.
type Toolkit struct {
	plugin.Base

	transport string
	command   string
	args      []string
	url       string
	allowed   map[string]bool

	mu     sync.RWMutex
	client client.MCPClient
	regs   []tool.Registration
}

func (t *Toolkit) Init(ctx context.Context, _ *plugin.Context) error {
	cli, err := t.createClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create MCP client: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "animusd",
		Version: version.Version,
	}
	if _, err := cli.Initialize(ctx, initReq); err != nil {
		cli.Close()
		return fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	listResp, err := cli.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		cli.Close()
		return fmt.Errorf("failed to list MCP tools: %w", err)
	}

	regs := make([]tool.Registration, 0, len(listResp.Tools))
	for _, mt := range listResp.Tools {
		if t.allowed != nil && !t.allowed[mt.Name] {
			continue
		}
		regs = append(regs, tool.Registration{
			Name: t.toolName(mt.Name),
			Tool: &mcpTool{
				toolkit:     t,
				remoteName:  mt.Name,
				description: mt.Description,
				schema:      convertSchema(mt.InputSchema),
			},
		})
	}

	t.mu.Lock()
	t.client = cli
	t.regs = regs
	t.mu.Unlock()

	logger.InfoX("plugin", "mcp-toolkit %q connected, %d tools discovered", t.Name(), len(regs))
	return nil
}

func (t *Toolkit) Destroy(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client != nil {
		if err := t.client.Close(); err != nil {
			logger.WarnX("plugin", "mcp-toolkit %q: failed to close client: %v", t.Name(), err)
		}
		t.client = nil
	}
	t.regs = nil
	return nil
}

// Tools implements tool.Provider.
func (t *Toolkit) Tools() []tool.Registration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]tool.Registration, len(t.regs))
	copy(out, t.regs)
	return out
}

// toolName prefixes remote tool names with the instance id so that two
// server instances cannot collide in the dispatcher.
func (t *Toolkit) toolName(remote string) string {
	if t.InstanceID() == "" {
		return remote
	}
	return t.InstanceID() + "_" + remote
}

func (t *Toolkit) createClient(ctx context.Context) (client.MCPClient, error) {
	switch t.transport {
	case "stdio":
		return client.NewStdioMCPClient(t.command, nil, t.args...)
	case "sse":
		cli, err := client.NewSSEMCPClient(t.url)
		if err != nil {
			return nil, err
		}
		if err := cli.Start(ctx); err != nil {
			return nil, err
		}
		return cli, nil
	default:
		return nil, fmt.Errorf("unknown transport: %s", t.transport)
	}
}

type mcpTool struct {
	toolkit     *Toolkit
	remoteName  string
	description string
	schema      map[string]interface{}
}

func (m *mcpTool) Description() string { return m.description }

func (m *mcpTool) Parameters() map[string]interface{} { return m.schema }

func (m *mcpTool) Execute(ctx context.Context, args map[string]interface{}, _ *tool.ExecContext) (*tool.Result, error) {
	m.toolkit.mu.RLock()
	cli := m.toolkit.client
	m.toolkit.mu.RUnlock()
	if cli == nil {
		return nil, fmt.Errorf("MCP client not connected")
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = m.remoteName
	req.Params.Arguments = args

	resp, err := cli.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("MCP call failed: %w", err)
	}

	text := collectText(resp)
	if resp.IsError {
		if text == "" {
			text = "unknown MCP error"
		}
		return tool.Fail(text), nil
	}
	return tool.Ok(text), nil
}

func collectText(resp *mcp.CallToolResult) string {
	var texts []string
	for _, content := range resp.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			texts = append(texts, tc.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// convertSchema round-trips the MCP schema through JSON to get a plain map.
func convertSchema(schema mcp.ToolInputSchema) map[string]interface{} {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

var (
	_ plugin.Plugin = (*Toolkit)(nil)
	_ tool.Provider = (*Toolkit)(nil)
)
