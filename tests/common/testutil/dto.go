//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// DtoMap renders v as a JSON object so tests can drop or corrupt fields
// the typed request would never allow.
func DtoMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, f := range muts {
		f(m)
	}
	return m
}

// Field sets the value at a dotted path ("offer.deposit"); a nil value
// removes the key. Missing intermediate objects are left alone.
func Field(path string, value any) func(m map[string]any) {
	keys := strings.Split(path, ".")
	return func(m map[string]any) {
		for _, k := range keys[:len(keys)-1] {
			next, ok := m[k].(map[string]any)
			if !ok {
				return
			}
			m = next
		}
		last := keys[len(keys)-1]
		if value == nil {
			delete(m, last)
			return
		}
		m[last] = value
	}
}
