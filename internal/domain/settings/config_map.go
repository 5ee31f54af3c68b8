package settings

import (
	"encoding/json"
	"math"
	"strconv"
)

// ConfigMap is a nested key/value configuration tree. Unknown keys read as
// absent; the typed view lives in Rules.
type ConfigMap map[string]any

// Clone returns a deep copy; nested maps and slices are never shared.
func (m ConfigMap) Clone() ConfigMap {
	if m == nil {
		return nil
	}
	out := make(ConfigMap, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge returns a new map holding m with overlay deep-merged on top.
// When both sides hold a nested map the merge recurses, otherwise overlay wins.
func (m ConfigMap) Merge(overlay ConfigMap) ConfigMap {
	out := m.Clone()
	if out == nil {
		out = ConfigMap{}
	}
	for k, ov := range overlay {
		if om, ok := asMap(ov); ok {
			if bm, ok := asMap(out[k]); ok {
				out[k] = map[string]any(ConfigMap(bm).Merge(om))
				continue
			}
		}
		out[k] = cloneValue(ov)
	}
	return out
}

// Lookup walks path through nested maps.
func (m ConfigMap) Lookup(path ...string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	var cur any = map[string]any(m)
	for _, key := range path {
		node, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = node[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func (m ConfigMap) String(def string, path ...string) string {
	if v, ok := m.OptString(path...); ok {
		return v
	}
	return def
}

// OptString reports a non-empty string value at path.
func (m ConfigMap) OptString(path ...string) (string, bool) {
	v, ok := m.Lookup(path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func (m ConfigMap) Float(def float64, path ...string) float64 {
	if f, ok := m.OptFloat(path...); ok {
		return f
	}
	return def
}

// OptFloat reports a numeric value at path. Numeric strings are accepted.
func (m ConfigMap) OptFloat(path ...string) (float64, bool) {
	v, ok := m.Lookup(path...)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

func (m ConfigMap) Int(def int64, path ...string) int64 {
	f, ok := m.OptFloat(path...)
	if !ok {
		return def
	}
	return int64(math.Trunc(f))
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case ConfigMap:
		return t, true
	default:
		return nil, false
	}
}

func cloneValue(v any) any {
	if nested, ok := asMap(v); ok {
		return map[string]any(ConfigMap(nested).Clone())
	}
	if list, ok := v.([]any); ok {
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}

// toFloat rejects NaN and infinities so they read as absent.
func toFloat(v any) (float64, bool) {
	f, ok := rawFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func rawFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
