//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"scooter-rental/internal/pkg/requestid"

	"github.com/stretchr/testify/assert"
)

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertRequestID checks the echoed request id; an empty want only
// requires that one was generated. The echoed id is returned.
func AssertRequestID(t *testing.T, w *httptest.ResponseRecorder, want string) string {
	t.Helper()
	got := w.Header().Get(requestid.Header)
	if want == "" {
		assert.NotEmpty(t, got, "missing %s header", requestid.Header)
	} else {
		assert.Equal(t, want, got)
	}
	return got
}
