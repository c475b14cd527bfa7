package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/reelbook/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	m := httpx.NewMetrics("reelbook_test")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := httpx.Chain(mux, m.Middleware())

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)

	require.Contains(t, out, `reelbook_test_http_requests_total{method="GET",route="GET /items/{id}",status="418"} 2`)
	require.Contains(t, out, `status="404"`)
	require.Contains(t, out, "reelbook_test_http_request_duration_seconds_bucket")
	require.Contains(t, out, "go_goroutines")
}

func TestNewMetricsIsolated(t *testing.T) {
	// Separate registries: constructing twice must not panic on duplicate registration.
	require.NotPanics(t, func() {
		_ = httpx.NewMetrics("dup")
		_ = httpx.NewMetrics("dup")
	})
}
