// Package builtin assembles the compiled-in plugin factory table. Plugin
// resolution is closed over this set plus any bundles discovered on disk:
// a configured package name that matches nothing here is reported by the
// reconciler, never loaded dynamically.
package builtin

import (
	"github.com/kiosk404/animus/internal/animusd/service/plugin"
	"github.com/kiosk404/animus/internal/animusd/service/plugin/builtin/boltstore"
	"github.com/kiosk404/animus/internal/animusd/service/plugin/builtin/clock"
	"github.com/kiosk404/animus/internal/animusd/service/plugin/builtin/mcptoolkit"
)

// Factories returns the in-tree factory table, keyed by package name.
// The default plugins are:
//   - clock: current-time tool
//   - mcp-toolkit: MCP server tool bridge (multi-instance)
//   - bolt-store: BoltDB-backed storage
func Factories() map[string]plugin.Factory {
	return map[string]plugin.Factory{
		clock.PluginName:      clock.Factory,
		mcptoolkit.PluginName: mcptoolkit.Factory,
		boltstore.PluginName:  boltstore.Factory,
	}
}
