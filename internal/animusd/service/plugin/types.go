// Package plugin implements the runtime's plugin registry and lifecycle
// manager: a compiled-in set of plugin factories selected by configuration,
// loaded into a registry, initialized in dependency order and destroyed in
// exact reverse order.
package plugin

import (
	"context"
	"errors"
)

// Type classifies what a plugin contributes to the runtime.
type Type string

const (
	TypeChannel Type = "channel"
	TypeModel   Type = "model"
	TypeTool    Type = "tool"
	TypeStorage Type = "storage"
	TypeCustom  Type = "custom"
)

// Valid reports whether t is one of the known plugin types.
func (t Type) Valid() bool {
	switch t {
	case TypeChannel, TypeModel, TypeTool, TypeStorage, TypeCustom:
		return true
	}
	return false
}

var (
	// ErrUnresolvedDependency is returned by InitAll when a plugin declares
	// a dependency that is not in the registry.
	ErrUnresolvedDependency = errors.New("plugin: unresolved dependency")

	// ErrDependencyCycle is returned by InitAll when the declared
	// dependency graph contains a cycle.
	ErrDependencyCycle = errors.New("plugin: dependency cycle")
)

// Plugin is the lifecycle contract every plugin implements. Identity
// methods must be callable before Init; Init must complete before any
// capability method is used; Destroy must release all resources.
type Plugin interface {
	// Name is the process-unique plugin name. Multi-instance plugins
	// return "base#instanceId".
	Name() string
	// Version is the plugin's own version string.
	Version() string
	// Type classifies the plugin.
	Type() Type
	// Dependencies names the plugins that must initialize first.
	Dependencies() []string
	// InstanceID is the instance discriminator, empty for single-instance
	// plugins.
	InstanceID() string

	// Init prepares the plugin for use. The context bundle is handed out
	// once and must not be retained past Destroy.
	Init(ctx context.Context, pctx *Context) error
	// Destroy releases all resources held by the plugin.
	Destroy(ctx context.Context) error
}

// Args is the configuration map passed to a Factory: the package-level
// config, overlaid with the instance descriptor for multi-instance plugins.
// The reserved key "instanceId" carries the instance discriminator.
type Args map[string]interface{}

// InstanceID extracts the reserved instance discriminator, if any.
func (a Args) InstanceID() string {
	if v, ok := a["instanceId"].(string); ok {
		return v
	}
	return ""
}

// String reads a string-valued argument with a fallback.
func (a Args) String(key, fallback string) string {
	if v, ok := a[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// Bool reads a bool-valued argument with a fallback.
func (a Args) Bool(key string, fallback bool) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return fallback
}

// Factory creates one plugin instance from its configuration. Registered
// per package name in the in-tree table; invoked once per declared instance.
type Factory func(args Args) (Plugin, error)

// Base carries plugin identity and implements everything of Plugin except
// Init and Destroy. Plugin implementations embed it.
type Base struct {
	PluginName    string
	PluginVersion string
	PluginType    Type
	Deps          []string
	Instance      string
}

// Name implements Plugin. Instances are named "base#instanceId".
func (b *Base) Name() string {
	if b.Instance != "" {
		return b.PluginName + "#" + b.Instance
	}
	return b.PluginName
}

func (b *Base) Version() string        { return b.PluginVersion }
func (b *Base) Type() Type             { return b.PluginType }
func (b *Base) Dependencies() []string { return b.Deps }
func (b *Base) InstanceID() string     { return b.Instance }
