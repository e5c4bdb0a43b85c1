package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitDeliversInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.On("greet", "first", func(_ context.Context, _ string, _ interface{}) error {
		got = append(got, "first")
		return nil
	})
	bus.On("greet", "second", func(_ context.Context, _ string, _ interface{}) error {
		got = append(got, "second")
		return nil
	})

	bus.Emit(context.Background(), "greet", nil)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestEmitNamedHandlersBeforeWildcard(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.On(Wildcard, "any", func(_ context.Context, event string, _ interface{}) error {
		got = append(got, "wildcard:"+event)
		return nil
	})
	bus.On("greet", "named", func(_ context.Context, _ string, _ interface{}) error {
		got = append(got, "named")
		return nil
	})

	bus.Emit(context.Background(), "greet", nil)
	require.Equal(t, []string{"named", "wildcard:greet"}, got)
}

func TestOnSameIDReplacesKeepingOrderSlot(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.On("greet", "a", func(_ context.Context, _ string, _ interface{}) error {
		got = append(got, "a-old")
		return nil
	})
	bus.On("greet", "b", func(_ context.Context, _ string, _ interface{}) error {
		got = append(got, "b")
		return nil
	})
	// Re-registering "a" must not move it behind "b".
	bus.On("greet", "a", func(_ context.Context, _ string, _ interface{}) error {
		got = append(got, "a-new")
		return nil
	})

	require.Equal(t, 2, bus.HandlerCount("greet"))
	bus.Emit(context.Background(), "greet", nil)
	assert.Equal(t, []string{"a-new", "b"}, got)
}

func TestEmitContinuesPastFailingHandler(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.On("greet", "boom", func(_ context.Context, _ string, _ interface{}) error {
		return errors.New("boom")
	})
	bus.On("greet", "panics", func(_ context.Context, _ string, _ interface{}) error {
		panic("handler exploded")
	})
	bus.On("greet", "survivor", func(_ context.Context, _ string, _ interface{}) error {
		got = append(got, "survivor")
		return nil
	})

	assert.NotPanics(t, func() {
		bus.Emit(context.Background(), "greet", nil)
	})
	assert.Equal(t, []string{"survivor"}, got)
}

func TestEmitPassesPayload(t *testing.T) {
	bus := NewBus()
	var got interface{}

	bus.On("greet", "h", func(_ context.Context, _ string, payload interface{}) error {
		got = payload
		return nil
	})

	bus.Emit(context.Background(), "greet", MessagePayload{ChannelID: "cli", MessageID: "m1"})
	require.Equal(t, MessagePayload{ChannelID: "cli", MessageID: "m1"}, got)
}

func TestOffRemovesOnlyNamedHandler(t *testing.T) {
	bus := NewBus()
	calls := 0

	bus.On("greet", "keep", func(_ context.Context, _ string, _ interface{}) error {
		calls++
		return nil
	})
	bus.On("greet", "drop", func(_ context.Context, _ string, _ interface{}) error {
		t.Fatal("removed handler must not run")
		return nil
	})

	bus.Off("greet", "drop")
	bus.Off("greet", "unknown") // no-op

	bus.Emit(context.Background(), "greet", nil)
	assert.Equal(t, 1, calls)
}

func TestRemoveAllClearsEverything(t *testing.T) {
	bus := NewBus()
	bus.On("greet", "h", func(_ context.Context, _ string, _ interface{}) error { return nil })
	bus.On(Wildcard, "w", func(_ context.Context, _ string, _ interface{}) error { return nil })

	bus.RemoveAll()
	assert.Equal(t, 0, bus.HandlerCount("greet"))
	assert.Equal(t, 0, bus.HandlerCount(Wildcard))
}
