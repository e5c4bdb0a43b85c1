package plugin

import (
	"github.com/kiosk404/animus/internal/animusd/config"
	"github.com/kiosk404/animus/internal/animusd/service/event"
	"github.com/kiosk404/animus/internal/animusd/service/storage"
	"github.com/sirupsen/logrus"
)

// Context is the immutable collaborator bundle passed once at Init.
type Context struct {
	// Config is the dotted-path view of the runtime configuration.
	Config config.Accessor

	// Logger is a leveled sink tagged for the plugin subsystem; plugins
	// derive their own fields from it.
	Logger *logrus.Entry

	// Events is the runtime event bus.
	Events *event.Bus

	// Storage is the persistence collaborator. It is a delegate: storage
	// plugins bind the concrete backend during boot.
	Storage storage.Provider
}
