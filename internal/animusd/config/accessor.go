package config

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Accessor is the read-only view of the merged configuration tree handed to
// core modules and plugins. Paths are dotted; a segment that itself contains
// dots is written in double quotes:
//
//	plugins."github.com/kiosk404/animus-weather".instances
type Accessor interface {
	// Get returns the raw value at path, and whether it exists.
	Get(path string) (interface{}, bool)

	GetString(path string) string
	GetBool(path string) bool
	GetInt(path string) int
	GetFloat(path string) float64
	GetStringSlice(path string) []string
	GetSlice(path string) []interface{}
	GetStringMap(path string) map[string]interface{}

	// Keys returns the sorted child keys of the map at path.
	Keys(path string) []string

	// Sub returns an Accessor rooted at the map found at path, or nil.
	Sub(path string) Accessor
}

// mapAccessor walks a nested map[string]interface{} settings tree.
type mapAccessor struct {
	root map[string]interface{}
}

// NewAccessor wraps a nested settings map in an Accessor.
func NewAccessor(root map[string]interface{}) Accessor {
	if root == nil {
		root = map[string]interface{}{}
	}
	return &mapAccessor{root: root}
}

// SplitPath splits a dotted path into segments, honoring double-quoted
// segments whose content may contain dots.
func SplitPath(path string) []string {
	var (
		segs []string
		cur  strings.Builder
		inQ  bool
	)
	for _, r := range path {
		switch {
		case r == '"':
			inQ = !inQ
		case r == '.' && !inQ:
			segs = append(segs, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	segs = append(segs, cur.String())
	return segs
}

func (a *mapAccessor) Get(path string) (interface{}, bool) {
	var cur interface{} = a.root
	for _, seg := range SplitPath(path) {
		m, ok := toStringMap(cur)
		if !ok {
			return nil, false
		}
		v, ok := lookupKey(m, seg)
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// lookupKey resolves a key case-insensitively, matching viper's behavior of
// lowercasing all keys it reads.
func lookupKey(m map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	if v, ok := m[strings.ToLower(key)]; ok {
		return v, true
	}
	return nil, false
}

func toStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[cast.ToString(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func (a *mapAccessor) GetString(path string) string {
	v, ok := a.Get(path)
	if !ok {
		return ""
	}
	return cast.ToString(v)
}

func (a *mapAccessor) GetBool(path string) bool {
	v, ok := a.Get(path)
	if !ok {
		return false
	}
	return cast.ToBool(v)
}

func (a *mapAccessor) GetInt(path string) int {
	v, ok := a.Get(path)
	if !ok {
		return 0
	}
	return cast.ToInt(v)
}

func (a *mapAccessor) GetFloat(path string) float64 {
	v, ok := a.Get(path)
	if !ok {
		return 0
	}
	return cast.ToFloat64(v)
}

func (a *mapAccessor) GetStringSlice(path string) []string {
	v, ok := a.Get(path)
	if !ok {
		return nil
	}
	return cast.ToStringSlice(v)
}

func (a *mapAccessor) GetSlice(path string) []interface{} {
	v, ok := a.Get(path)
	if !ok {
		return nil
	}
	s, err := cast.ToSliceE(v)
	if err != nil {
		return nil
	}
	return s
}

func (a *mapAccessor) GetStringMap(path string) map[string]interface{} {
	v, ok := a.Get(path)
	if !ok {
		return nil
	}
	m, ok := toStringMap(v)
	if !ok {
		return nil
	}
	return m
}

func (a *mapAccessor) Keys(path string) []string {
	m := a.GetStringMap(path)
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (a *mapAccessor) Sub(path string) Accessor {
	m := a.GetStringMap(path)
	if m == nil {
		return nil
	}
	return &mapAccessor{root: m}
}
