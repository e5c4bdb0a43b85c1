// Package pkgsync reconciles the declared plugin package set against what
// is actually resolvable, installing what is missing and running a
// time-gated auto-update over the whole declared set.
package pkgsync

import (
	"context"
	"sort"
	"time"

	genericoptions "github.com/kiosk404/animus/internal/pkg/options"
	"github.com/kiosk404/animus/pkg/logger"
)

const moduleName = "pkgsync"

// SyncResult reports what one reconciliation pass did. The package lists
// are disjoint.
type SyncResult struct {
	Installed      []string `json:"installed"`
	AlreadyPresent []string `json:"alreadyPresent"`
	Failed         []string `json:"failed"`
	Updated        []string `json:"updated"`
	SkippedUpdate  bool     `json:"skippedUpdate"`
}

// Reconciler compares declared plugin packages with the resolvable set and
// drives batched install/update through its collaborators.
type Reconciler struct {
	opts      *genericoptions.PluginsOptions
	resolver  Resolver
	installer Installer

	statePath     string
	autoUpdate    bool
	intervalHours float64

	// now is a test seam for the wall clock.
	now func() time.Time
}

// Config collects the Reconciler's construction inputs.
type Config struct {
	Plugins *genericoptions.PluginsOptions
	Runtime *genericoptions.RuntimeOptions

	Resolver  Resolver
	Installer Installer

	// StatePath is the auto-update state file. Empty derives it from the
	// runtime data directory.
	StatePath string
}

// New creates a Reconciler from the given config.
func New(cfg Config) *Reconciler {
	plugins := cfg.Plugins
	if plugins == nil {
		plugins = genericoptions.NewPluginsOptions()
	}
	runtime := cfg.Runtime
	if runtime == nil {
		runtime = genericoptions.NewRuntimeOptions()
	}
	statePath := cfg.StatePath
	if statePath == "" {
		statePath = runtime.DataDir + "/plugin-update-state.json"
	}
	return &Reconciler{
		opts:          plugins,
		resolver:      cfg.Resolver,
		installer:     cfg.Installer,
		statePath:     statePath,
		autoUpdate:    runtime.PluginAutoUpdate,
		intervalHours: runtime.PluginUpdateIntervalHours,
		now:           time.Now,
	}
}

// Sync runs one reconciliation pass. Install failures land in the result's
// Failed list; boot continues with whatever is available, so Sync itself
// does not fail.
func (r *Reconciler) Sync(ctx context.Context) *SyncResult {
	result := &SyncResult{}

	declared := make([]string, 0, len(r.opts.Entries))
	for pkg := range r.opts.Entries {
		declared = append(declared, pkg)
	}
	sort.Strings(declared)

	if len(declared) == 0 {
		result.SkippedUpdate = true
		return result
	}

	var missing []string
	for _, pkg := range declared {
		if r.resolver != nil && r.resolver.Resolve(pkg) {
			result.AlreadyPresent = append(result.AlreadyPresent, pkg)
		} else {
			missing = append(missing, pkg)
		}
	}

	if len(missing) > 0 {
		if r.installer == nil {
			logger.WarnX(moduleName, "%d packages unresolved and no installer configured: %v", len(missing), missing)
			result.Failed = missing
		} else if err := r.installer.Install(ctx, missing); err != nil {
			// One batched call; a partial failure is not distinguished.
			logger.WarnX(moduleName, "install of %v failed: %v", missing, err)
			result.Failed = missing
		} else {
			logger.InfoX(moduleName, "installed %d packages: %v", len(missing), missing)
			result.Installed = missing
		}
	}

	r.maybeUpdate(ctx, declared, result)
	return result
}

// maybeUpdate runs the auto-update path when it is enabled and the
// persisted timestamp is older than the configured interval. A missing or
// unreadable timestamp means the update is due.
func (r *Reconciler) maybeUpdate(ctx context.Context, declared []string, result *SyncResult) {
	if !r.autoUpdate || r.installer == nil {
		result.SkippedUpdate = true
		return
	}

	if last, ok := readState(r.statePath); ok {
		gap := time.Duration(r.intervalHours * float64(time.Hour))
		if r.now().Sub(last) < gap {
			logger.DebugX(moduleName, "auto-update not due yet (last %s)", last.Format(time.RFC3339))
			result.SkippedUpdate = true
			return
		}
	}

	if err := r.installer.InstallLatest(ctx, declared); err != nil {
		logger.WarnX(moduleName, "auto-update failed: %v", err)
		return
	}

	// Keep the result lists disjoint: packages freshly installed this pass
	// stay in Installed, everything else declared was just brought to
	// latest and moves to Updated.
	fresh := make(map[string]bool, len(result.Installed))
	for _, pkg := range result.Installed {
		fresh[pkg] = true
	}
	result.AlreadyPresent = nil
	result.Failed = nil
	for _, pkg := range declared {
		if !fresh[pkg] {
			result.Updated = append(result.Updated, pkg)
		}
	}
	logger.InfoX(moduleName, "auto-update complete: %d packages pinned to latest", len(declared))

	if err := writeState(r.statePath, r.now()); err != nil {
		logger.WarnX(moduleName, "failed to persist update state: %v", err)
	}
}
