package animusd

import (
	"context"
	"log"
	"sort"

	"github.com/kiosk404/animus/internal/animusd/config"
	"github.com/kiosk404/animus/internal/animusd/service/agent"
	"github.com/kiosk404/animus/internal/animusd/service/channel"
	"github.com/kiosk404/animus/internal/animusd/service/event"
	"github.com/kiosk404/animus/internal/animusd/service/model"
	"github.com/kiosk404/animus/internal/animusd/service/pkgsync"
	"github.com/kiosk404/animus/internal/animusd/service/plugin"
	"github.com/kiosk404/animus/internal/animusd/service/plugin/builtin"
	"github.com/kiosk404/animus/internal/animusd/service/router"
	"github.com/kiosk404/animus/internal/animusd/service/storage"
	"github.com/kiosk404/animus/internal/animusd/service/tool"
	genericapiserver "github.com/kiosk404/animus/internal/pkg/server"
	"github.com/kiosk404/animus/pkg/logger"
	"github.com/kiosk404/animus/pkg/shutdown"
	"github.com/kiosk404/animus/pkg/shutdown/posixsignal"
)

type runtimeServer struct {
	gs               *shutdown.GracefulShutdown
	genericAPIServer *genericapiserver.GenericAPIServer

	cfg        *config.Config
	events     *event.Bus
	manager    *plugin.Manager
	reconciler *pkgsync.Reconciler
	lastSync   *pkgsync.SyncResult

	models   *model.Registry
	tools    *tool.Dispatcher
	delegate *storage.Delegate
	loop     *agent.Loop
	agents   map[string]agent.Definition
	router   *router.Router
}

type preparedRuntimeServer struct {
	*runtimeServer
}

// createRuntimeServer runs the boot sequence: reconcile the declared plugin
// packages, load and initialize plugins, then wire the agent loop and the
// message router from what the plugins provide.
func createRuntimeServer(cfg *config.Config) (*runtimeServer, error) {
	ctx := context.Background()

	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())

	events := event.NewBus()
	factories := builtin.Factories()

	// A typed nil must not end up in the Installer interface slot.
	var installer pkgsync.Installer
	if ci := pkgsync.NewCommandInstaller(cfg.RuntimeOptions.PluginInstallCommand); ci != nil {
		installer = ci
	}
	reconciler := pkgsync.New(pkgsync.Config{
		Plugins: cfg.PluginOptions,
		Runtime: cfg.RuntimeOptions,
		Resolver: pkgsync.MultiResolver{
			pkgsync.NewFactoryResolver(factoryNames(factories)),
			pkgsync.NewPathResolver(cfg.RuntimeOptions.PluginSearchPaths),
		},
		Installer: installer,
	})
	syncResult := reconciler.Sync(ctx)
	logger.InfoX("pkgsync", "reconcile done: installed=%d present=%d failed=%d updated=%d",
		len(syncResult.Installed), len(syncResult.AlreadyPresent),
		len(syncResult.Failed), len(syncResult.Updated))

	manager := plugin.NewManager(cfg.PluginOptions, factories, events)
	manager.LoadAll(ctx)

	delegate := storage.NewDelegate()
	pctx := &plugin.Context{
		Config:  cfg.Settings,
		Logger:  logger.WithModule("plugin"),
		Events:  events,
		Storage: delegate,
	}
	if err := manager.InitAll(ctx, pctx); err != nil {
		return nil, err
	}

	// Bind the first initialized storage plugin as the active backend.
	for _, p := range manager.GetByType(plugin.TypeStorage) {
		if prov, ok := p.(storage.Provider); ok {
			delegate.Bind(prov)
			logger.Info("[Animusd] storage backend bound: %s", p.Name())
			break
		}
	}

	models := model.NewRegistry()
	for _, p := range manager.GetByType(plugin.TypeModel) {
		prov, ok := p.(model.Provider)
		if !ok {
			logger.Warn("[Animusd] model plugin %q does not implement the provider contract, skipping", p.Name())
			continue
		}
		if err := models.Register(p.Name(), prov); err != nil {
			logger.Warn("[Animusd] failed to register model provider %q: %v", p.Name(), err)
		}
	}

	var regs []tool.Registration
	for _, name := range manager.Registry().Names() {
		p, _ := manager.Registry().Get(name)
		if tp, ok := p.(tool.Provider); ok {
			regs = append(regs, tp.Tools()...)
		}
	}
	tools := tool.NewDispatcher(regs)

	loop := agent.NewLoop(models, tools, events)

	agents := make(map[string]agent.Definition, len(cfg.AgentOptions.Entries))
	for id, acfg := range cfg.AgentOptions.Entries {
		agents[id] = agent.DefinitionFromOptions(id, acfg)
	}
	rtr := router.New(loop, defaultAgent(cfg, agents), events)
	for _, p := range manager.GetByType(plugin.TypeChannel) {
		ch, ok := p.(channel.Channel)
		if !ok {
			logger.Warn("[Animusd] channel plugin %q does not implement the channel contract, skipping", p.Name())
			continue
		}
		rtr.Bind(p.Name(), ch)
	}

	server := &runtimeServer{
		gs:         gs,
		cfg:        cfg,
		events:     events,
		manager:    manager,
		reconciler: reconciler,
		lastSync:   syncResult,
		models:     models,
		tools:      tools,
		delegate:   delegate,
		loop:       loop,
		agents:     agents,
		router:     rtr,
	}

	if cfg.ServingOptions.Enabled {
		genericConfig := genericapiserver.NewConfig()
		genericConfig.Addr = cfg.ServingOptions.Addr()
		genericConfig.Profiling = cfg.ServingOptions.Profiling
		server.genericAPIServer = genericConfig.Complete().New()
	}

	return server, nil
}

// defaultAgent picks the agent the router binds inbound messages to. An
// explicit agents.default wins, a lone configured agent is used as-is, and
// an empty agents section falls back to a bare assistant on the default
// model.
func defaultAgent(cfg *config.Config, agents map[string]agent.Definition) agent.Definition {
	if id := cfg.AgentOptions.Default; id != "" {
		if def, ok := agents[id]; ok {
			return def
		}
		logger.Warn("[Animusd] agents.default %q has no entry, falling back", id)
	}
	if len(agents) == 1 {
		for _, def := range agents {
			return def
		}
	}
	ids := make([]string, 0, len(agents))
	for id := range agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) > 0 {
		logger.Warn("[Animusd] no agents.default configured, using %q", ids[0])
		return agents[ids[0]]
	}
	return agent.Definition{
		ID:       "assistant",
		Name:     "assistant",
		MaxTurns: agent.DefaultMaxTurns,
	}
}

func factoryNames(factories map[string]plugin.Factory) []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *runtimeServer) PrepareRun() preparedRuntimeServer {
	if s.genericAPIServer != nil {
		initRouter(s.genericAPIServer.Engine, s)
	}

	s.cfg.Watch(func(settings config.Accessor) {
		logger.Info("[Animusd] configuration reloaded, restart to apply plugin changes")
	})

	s.gs.AddShutdownCallback(shutdown.Func(func(string) error {
		ctx := context.Background()

		s.router.Stop()
		s.events.Emit(ctx, event.RuntimeShutdown, event.RuntimePayload{})
		s.manager.DestroyAll(ctx)
		s.events.RemoveAll()

		if s.genericAPIServer != nil {
			s.genericAPIServer.Close()
		}
		return nil
	}))

	return preparedRuntimeServer{s}
}

func (s preparedRuntimeServer) Run() error {
	if err := s.gs.Start(); err != nil {
		log.Fatalf("start shutdown manager failed: %s", err.Error())
	}

	s.events.Emit(context.Background(), event.RuntimeReady, event.RuntimePayload{})
	logger.Info("[Animusd] runtime ready: %d plugins, %d tools, %d model providers",
		s.manager.Registry().Len(), s.tools.Len(), len(s.models.Names()))

	if s.genericAPIServer != nil {
		return s.genericAPIServer.Run()
	}

	<-s.gs.Done()
	return nil
}
