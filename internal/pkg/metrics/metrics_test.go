package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.CacheResult("memory", true)
	m.CacheResult("memory", false)
	m.CacheResult("memory", false)
	m.RecordOperation("school", "create", "ok")
	m.RegisterPoolGauge("acquired_conns", "Connections in use", func() float64 { return 3 })

	assert.Equal(t, 2.0, testutil.ToFloat64(m.IdentityCacheRequests.WithLabelValues("memory", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordOperationsTotal.WithLabelValues("school", "create", "ok")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admissions_identity_cache_requests_total")
	assert.Contains(t, rec.Body.String(), "admissions_db_pool_acquired_conns 3")
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheResult("redis", true)
		m.RecordOperation("jee", "get", "error")
	})
}
