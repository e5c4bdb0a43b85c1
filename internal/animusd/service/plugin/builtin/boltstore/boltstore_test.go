package boltstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/animus/internal/animusd/service/plugin"
	"github.com/kiosk404/animus/internal/animusd/service/storage"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	p, err := Factory(plugin.Args{"path": filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)

	s := p.(*Store)
	require.NoError(t, s.Init(context.Background(), nil))
	t.Cleanup(func() { _ = s.Destroy(context.Background()) })
	return s
}

func TestPluginIdentity(t *testing.T) {
	p, err := Factory(plugin.Args{})
	require.NoError(t, err)

	assert.Equal(t, PluginName, p.Name())
	assert.Equal(t, plugin.TypeStorage, p.Type())
	assert.NotEmpty(t, p.Version())
}

func TestMessageRoundTripAndSearch(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveMessage(ctx, &storage.MessageRecord{
		ID: "m1", ChannelID: "cli", Role: "user",
		Content: "the weather in Berlin", CreatedAt: time.Now(),
	}))
	require.NoError(t, s.SaveMessage(ctx, &storage.MessageRecord{
		ID: "m2", ChannelID: "cli", Role: "assistant",
		Content: "sunny all week", CreatedAt: time.Now(),
	}))

	found, err := s.SearchMessages(ctx, "BERLIN", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "m1", found[0].ID)

	all, err := s.SearchMessages(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	limited, err := s.SearchMessages(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestEntityRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec := &storage.EntityRecord{
		ID: "e1", Kind: "person", Name: "Ada",
		Attributes: map[string]string{"role": "engineer"},
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, s.SaveEntity(ctx, rec))

	got, err := s.GetEntity(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "engineer", got.Attributes["role"])

	_, err = s.GetEntity(ctx, "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFactSearch(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveFact(ctx, &storage.FactRecord{
		ID: "f1", EntityID: "e1", Text: "prefers tea over coffee", CreatedAt: time.Now(),
	}))

	found, err := s.SearchFacts(ctx, "tea", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "f1", found[0].ID)
}

func TestEmptyIDRejected(t *testing.T) {
	s := openStore(t)

	err := s.SaveMessage(context.Background(), &storage.MessageRecord{Content: "no id"})
	assert.Error(t, err)
}

func TestUsesUnavailableBeforeInit(t *testing.T) {
	p, err := Factory(plugin.Args{})
	require.NoError(t, err)
	s := p.(*Store)

	assert.ErrorIs(t, s.Ping(context.Background()), storage.ErrUnavailable)
	_, err = s.SearchMessages(context.Background(), "", 0)
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}
