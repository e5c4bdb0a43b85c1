package plugin

import (
	"context"
	"fmt"
	"sort"

	"github.com/jinzhu/copier"
	"github.com/kiosk404/animus/internal/animusd/service/event"
	genericoptions "github.com/kiosk404/animus/internal/pkg/options"
	"github.com/kiosk404/animus/pkg/logger"
)

const moduleName = "plugin"

// Manager drives the plugin lifecycle: LoadAll resolves declared packages
// against the factory table and fills the registry, InitAll initializes in
// dependency order, DestroyAll tears down in exact reverse order.
type Manager struct {
	registry  *Registry
	factories map[string]Factory
	events    *event.Bus
	opts      *genericoptions.PluginsOptions

	// initOrder is the dependency-resolved init order, remembered so that
	// DestroyAll can walk it backwards.
	initOrder []string
}

// NewManager creates a Manager over the given factory table.
func NewManager(opts *genericoptions.PluginsOptions, factories map[string]Factory, events *event.Bus) *Manager {
	if opts == nil {
		opts = genericoptions.NewPluginsOptions()
	}
	return &Manager{
		registry:  NewRegistry(),
		factories: factories,
		events:    events,
		opts:      opts,
	}
}

// Registry returns the underlying plugin registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// GetByType returns all registered plugins of the given type, in
// registration order.
func (m *Manager) GetByType(t Type) []Plugin {
	return m.registry.GetByType(t)
}

// LoadAll instantiates one plugin per declared package, or one per instance
// descriptor for packages declaring instances. Invalid declarations and
// misbehaving factories are logged and skipped; a bad package never aborts
// the batch.
func (m *Manager) LoadAll(ctx context.Context) {
	if !m.opts.Enabled {
		logger.InfoX(moduleName, "plugin system disabled, skipping load")
		return
	}

	// The declared set is a map; sort its keys so registration order, and
	// with it the init order seed, is deterministic.
	pkgs := make([]string, 0, len(m.opts.Entries))
	for pkg := range m.opts.Entries {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	for _, pkg := range pkgs {
		entry := m.opts.Entries[pkg]
		if entry.Enabled != nil && !*entry.Enabled {
			logger.InfoX(moduleName, "package %q disabled, skipping", pkg)
			continue
		}

		factory, ok := m.factories[pkg]
		if !ok {
			logger.WarnX(moduleName, "package %q is not resolvable, skipping", pkg)
			continue
		}

		if len(entry.Instances) == 0 {
			m.loadOne(ctx, pkg, factory, buildArgs(entry.Config, nil, ""))
			continue
		}
		for _, inst := range entry.Instances {
			if inst.InstanceID == "" {
				logger.WarnX(moduleName, "package %q: instance descriptor without instanceId, skipping", pkg)
				continue
			}
			m.loadOne(ctx, pkg, factory, buildArgs(entry.Config, inst.Config, inst.InstanceID))
		}
	}

	logger.InfoX(moduleName, "load complete: %d plugins registered", m.registry.Len())
}

// buildArgs deep-copies the package config, overlays a deep copy of the
// instance config and adds the discriminator, so instances never share
// mutable state with each other or with the declared options.
func buildArgs(base, overlay map[string]interface{}, instanceID string) Args {
	args := make(Args, len(base)+len(overlay)+1)
	mergeCopy(args, base)
	mergeCopy(args, overlay)
	if instanceID != "" {
		args["instanceId"] = instanceID
	}
	return args
}

func mergeCopy(args Args, src map[string]interface{}) {
	if len(src) == 0 {
		return
	}
	var clone map[string]interface{}
	if err := copier.CopyWithOption(&clone, src, copier.Option{DeepCopy: true}); err == nil {
		for k, v := range clone {
			args[k] = v
		}
		return
	}
	for k, v := range src {
		args[k] = v
	}
}

func (m *Manager) loadOne(ctx context.Context, pkg string, factory Factory, args Args) {
	p, err := factory(args)
	if err != nil {
		logger.WarnX(moduleName, "package %q: factory failed: %v, skipping", pkg, err)
		return
	}
	if err := validate(p); err != nil {
		logger.WarnX(moduleName, "package %q: %v, skipping", pkg, err)
		return
	}
	if err := m.registry.register(p); err != nil {
		logger.WarnX(moduleName, "package %q: %v, skipping", pkg, err)
		return
	}

	logger.InfoX(moduleName, "loaded plugin %q (type=%s version=%s)", p.Name(), p.Type(), p.Version())
	m.emit(ctx, event.PluginLoaded, event.PluginPayload{Name: p.Name(), Type: string(p.Type())})
}

// validate enforces the plugin contract: non-empty name and version, a
// known type.
func validate(p Plugin) error {
	if p == nil {
		return fmt.Errorf("factory returned nil plugin")
	}
	if p.Name() == "" {
		return fmt.Errorf("plugin has an empty name")
	}
	if p.Version() == "" {
		return fmt.Errorf("plugin %q has an empty version", p.Name())
	}
	if !p.Type().Valid() {
		return fmt.Errorf("plugin %q has unknown type %q", p.Name(), p.Type())
	}
	return nil
}

// InitAll computes the dependency order and calls Init on every plugin in
// it. An unresolved dependency or a cycle fails before any Init runs. A
// failing or panicking Init is logged and does not block the plugins after
// it.
func (m *Manager) InitAll(ctx context.Context, pctx *Context) error {
	order, err := m.computeOrder()
	if err != nil {
		return err
	}
	m.initOrder = order

	for _, name := range order {
		p, _ := m.registry.Get(name)
		if err := m.initOne(ctx, p, pctx); err != nil {
			logger.WarnX(moduleName, "plugin %q init failed: %v", name, err)
			continue
		}
		logger.InfoX(moduleName, "initialized plugin %q", name)
	}
	return nil
}

func (m *Manager) initOne(ctx context.Context, p Plugin, pctx *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("init panic: %v", r)
		}
	}()
	return p.Init(ctx, pctx)
}

// computeOrder runs a depth-first traversal seeded by registration order:
// every declared dependency is visited before its dependent. Unknown
// dependency names and cycles are reported as named errors.
func (m *Manager) computeOrder() ([]string, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, m.registry.Len())
	order := make([]string, 0, m.registry.Len())

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: involving plugin %q", ErrDependencyCycle, name)
		}
		state[name] = visiting

		p, _ := m.registry.Get(name)
		for _, dep := range p.Dependencies() {
			if _, ok := m.registry.Get(dep); !ok {
				return fmt.Errorf("%w: plugin %q requires %q", ErrUnresolvedDependency, name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range m.registry.Names() {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// DestroyAll calls Destroy on every plugin in exact reverse init order,
// isolating individual failures, then clears the registry no matter what.
func (m *Manager) DestroyAll(ctx context.Context) {
	order := m.initOrder
	if len(order) == 0 {
		// Init never ran; fall back to reverse registration order.
		order = m.registry.Names()
	}

	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		p, ok := m.registry.Get(name)
		if !ok {
			continue
		}
		if err := m.destroyOne(ctx, p); err != nil {
			logger.WarnX(moduleName, "plugin %q destroy failed: %v", name, err)
		} else {
			logger.InfoX(moduleName, "destroyed plugin %q", name)
		}
		m.emit(ctx, event.PluginDestroyed, event.PluginPayload{Name: name})
	}

	m.registry.clear()
	m.initOrder = nil
}

func (m *Manager) destroyOne(ctx context.Context, p Plugin) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("destroy panic: %v", r)
		}
	}()
	return p.Destroy(ctx)
}

func (m *Manager) emit(ctx context.Context, name string, payload interface{}) {
	if m.events != nil {
		m.events.Emit(ctx, name, payload)
	}
}
