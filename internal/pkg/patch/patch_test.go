//go:build unit

package patch_test

import (
	"testing"

	"scooter-rental/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	v := 3
	assert.Equal(t, 3, patch.Coalesce(&v, 7))
	assert.Equal(t, 7, patch.Coalesce[int](nil, 7))
}

func TestFirstNonZero(t *testing.T) {
	assert.Equal(t, "v2", patch.FirstNonZero("", "v2", "v1"))
	assert.Equal(t, "v1", patch.FirstNonZero("", "", "v1"))
	assert.Equal(t, "", patch.FirstNonZero[string]())
}
