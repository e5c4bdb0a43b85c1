// Package storage defines the persistence contract used by plugins and the
// runtime. Concrete backends are storage plugins; the Delegate lets the
// plugin context carry a stable handle before any backend is bound.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("storage: record not found")
	// ErrUnavailable is returned by the Delegate before a backend is bound.
	ErrUnavailable = errors.New("storage: no provider bound")
)

// MessageRecord is a persisted conversation message.
type MessageRecord struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	AgentID   string    `json:"agent_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityRecord is a persisted named entity.
type EntityRecord struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// FactRecord is a persisted free-form fact, optionally tied to an entity.
type FactRecord struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entity_id,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider is the capability interface of storage plugins.
type Provider interface {
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	SaveMessage(ctx context.Context, rec *MessageRecord) error
	SearchMessages(ctx context.Context, query string, limit int) ([]*MessageRecord, error)

	SaveEntity(ctx context.Context, rec *EntityRecord) error
	GetEntity(ctx context.Context, id string) (*EntityRecord, error)

	SaveFact(ctx context.Context, rec *FactRecord) error
	SearchFacts(ctx context.Context, query string, limit int) ([]*FactRecord, error)
}

// Delegate forwards to a Provider bound after plugin initialization. The
// plugin context is handed out once, before any storage plugin has run its
// Init, so the context carries a Delegate instead of a concrete backend.
type Delegate struct {
	mu       sync.RWMutex
	provider Provider
}

// NewDelegate creates an unbound Delegate.
func NewDelegate() *Delegate {
	return &Delegate{}
}

// Bind installs the active backend. Later binds replace earlier ones.
func (d *Delegate) Bind(p Provider) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.provider = p
}

// Bound reports whether a backend has been installed.
func (d *Delegate) Bound() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.provider != nil
}

func (d *Delegate) get() (Provider, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.provider == nil {
		return nil, ErrUnavailable
	}
	return d.provider, nil
}

func (d *Delegate) Ping(ctx context.Context) error {
	p, err := d.get()
	if err != nil {
		return err
	}
	return p.Ping(ctx)
}

func (d *Delegate) SaveMessage(ctx context.Context, rec *MessageRecord) error {
	p, err := d.get()
	if err != nil {
		return err
	}
	return p.SaveMessage(ctx, rec)
}

func (d *Delegate) SearchMessages(ctx context.Context, query string, limit int) ([]*MessageRecord, error) {
	p, err := d.get()
	if err != nil {
		return nil, err
	}
	return p.SearchMessages(ctx, query, limit)
}

func (d *Delegate) SaveEntity(ctx context.Context, rec *EntityRecord) error {
	p, err := d.get()
	if err != nil {
		return err
	}
	return p.SaveEntity(ctx, rec)
}

func (d *Delegate) GetEntity(ctx context.Context, id string) (*EntityRecord, error) {
	p, err := d.get()
	if err != nil {
		return nil, err
	}
	return p.GetEntity(ctx, id)
}

func (d *Delegate) SaveFact(ctx context.Context, rec *FactRecord) error {
	p, err := d.get()
	if err != nil {
		return err
	}
	return p.SaveFact(ctx, rec)
}

func (d *Delegate) SearchFacts(ctx context.Context, query string, limit int) ([]*FactRecord, error) {
	p, err := d.get()
	if err != nil {
		return nil, err
	}
	return p.SearchFacts(ctx, query, limit)
}

// Delegate implements Provider.
var _ Provider = (*Delegate)(nil)
