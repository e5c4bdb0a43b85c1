package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/animus/internal/animusd/service/plugin"
)

func TestClockTool(t *testing.T) {
	p, err := Factory(plugin.Args{"timezone": "UTC"})
	require.NoError(t, err)
	require.NoError(t, p.Init(context.Background(), nil))

	c := p.(*Clock)
	c.now = func() time.Time {
		return time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)
	}

	regs := c.Tools()
	require.Len(t, regs, 1)
	assert.Equal(t, "current_time", regs[0].Name)

	res, err := regs[0].Tool.Execute(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Contains(t, res.Output, "2026")
	assert.Contains(t, res.Output, "15:04:05")
}

func TestInvalidTimezone(t *testing.T) {
	p, err := Factory(plugin.Args{"timezone": "Mars/Olympus"})
	require.NoError(t, err)

	assert.Error(t, p.Init(context.Background(), nil))
}
