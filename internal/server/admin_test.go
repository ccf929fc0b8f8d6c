package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oggyb/pawmatch/internal/metrics"
	"github.com/oggyb/pawmatch/internal/server"
	"github.com/oggyb/pawmatch/internal/testutil"
)

func TestHealthz(t *testing.T) {
	rc, mr := testutil.Redis(t)
	h := server.NewAdminRouter(testutil.Logger(), map[string]server.Pinger{
		"db":    server.PingFunc(func(context.Context) error { return nil }),
		"redis": rc,
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	mr.SetError("ERR redis is down")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis")
}

func TestHealthzReportsFailingDatabase(t *testing.T) {
	h := server.NewAdminRouter(testutil.Logger(), map[string]server.Pinger{
		"db": server.PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "db")
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.MustRegister()
	metrics.PassesTotal.Inc()

	h := server.NewAdminRouter(testutil.Logger(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "passes_total")
}
