package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.Redirects.Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(a.Redirects))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.Redirects))
}

func TestMetrics_RegisterMappingCount(t *testing.T) {
	m := New()

	count := 0
	require.NoError(t, m.RegisterMappingCount(func() float64 { return float64(count) }))

	count = 3
	expected := `
# HELP shortener_mappings Mappings currently held in memory.
# TYPE shortener_mappings gauge
shortener_mappings 3
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "shortener_mappings"))

	// A second gauge with the same name is rejected
	assert.Error(t, m.RegisterMappingCount(func() float64 { return 0 }))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.MappingsCreated.WithLabelValues(SourceGenerated).Inc()
	m.MappingsCreated.WithLabelValues(SourceRequested).Add(2)

	server := NewServer(":0", m)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `shortener_mappings_created_total{source="generated"} 1`)
	assert.Contains(t, string(body), `shortener_mappings_created_total{source="requested"} 2`)
}

func TestNewServer_OnlyServesMetrics(t *testing.T) {
	server := NewServer(":9090", New())
	assert.Equal(t, ":9090", server.Addr)

	req := httptest.NewRequest(http.MethodGet, "/example", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
