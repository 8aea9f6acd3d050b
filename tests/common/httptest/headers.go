//go:build unit || e2e

package httptest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertRedirect checks a 302 to path and returns the query of the Location header.
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, path string) url.Values {
	t.Helper()
	require.Equal(t, http.StatusFound, w.Code, "expected redirect, body: %s", w.Body.String())
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, path, loc.Path)
	return loc.Query()
}
