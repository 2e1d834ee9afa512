package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsExposure(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/partners", http.MethodGet, http.StatusOK, 15*time.Millisecond)
	m.RecordError("/api/partners", http.MethodPost, "VALIDATION_FAILED")
	m.RecordSync("outbound", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	for _, name := range []string{
		"partner_desk_http_requests_total",
		"partner_desk_http_request_duration_seconds",
		"partner_desk_http_errors_total",
		"partner_desk_sync_events_total",
	} {
		assert.Contains(t, string(body), name)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", http.MethodGet, http.StatusOK, time.Millisecond)
	m.RecordError("/", http.MethodGet, "X")
	m.RecordSync("inbound", "error")
}
