package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"runtime.dataDir", []string{"runtime", "dataDir"}},
		{"plugins", []string{"plugins"}},
		{`plugins."github.com/kiosk404/animus-weather".instances`,
			[]string{"plugins", "github.com/kiosk404/animus-weather", "instances"}},
		{`"a.b.c"`, []string{"a.b.c"}},
		{"", []string{""}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitPath(tt.path), "path %q", tt.path)
	}
}

func settingsFixture() Accessor {
	return NewAccessor(map[string]interface{}{
		"runtime": map[string]interface{}{
			"datadir":  "data",
			"loglevel": "info",
		},
		"serving": map[string]interface{}{
			"enabled":  true,
			"bindport": 11900,
		},
		"plugins": map[string]interface{}{
			"entries": map[string]interface{}{
				"github.com/kiosk404/animus-weather": map[string]interface{}{
					"config": map[string]interface{}{
						"units": "metric",
					},
				},
			},
		},
	})
}

func TestGetDottedPath(t *testing.T) {
	a := settingsFixture()

	assert.Equal(t, "data", a.GetString("runtime.dataDir"))
	assert.True(t, a.GetBool("serving.enabled"))
	assert.Equal(t, 11900, a.GetInt("serving.bindPort"))

	_, ok := a.Get("runtime.missing")
	assert.False(t, ok)
	_, ok = a.Get("runtime.dataDir.deeper")
	assert.False(t, ok)
}

func TestGetQuotedSegment(t *testing.T) {
	a := settingsFixture()

	got := a.GetString(`plugins.entries."github.com/kiosk404/animus-weather".config.units`)
	assert.Equal(t, "metric", got)
}

func TestKeysSorted(t *testing.T) {
	a := NewAccessor(map[string]interface{}{
		"top": map[string]interface{}{"zeta": 1, "alpha": 2, "mid": 3},
	})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, a.Keys("top"))
	assert.Nil(t, a.Keys("missing"))
}

func TestSub(t *testing.T) {
	a := settingsFixture()

	sub := a.Sub("runtime")
	require.NotNil(t, sub)
	assert.Equal(t, "info", sub.GetString("logLevel"))

	assert.Nil(t, a.Sub("serving.enabled"))
}

func TestYAMLInterfaceMaps(t *testing.T) {
	// Older YAML decoders produce map[interface{}]interface{} nodes.
	a := NewAccessor(map[string]interface{}{
		"outer": map[interface{}]interface{}{
			"inner": "value",
		},
	})

	assert.Equal(t, "value", a.GetString("outer.inner"))
}
