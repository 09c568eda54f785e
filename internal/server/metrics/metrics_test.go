package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve_CountsByOutcome(t *testing.T) {
	r := NewRegistrations()

	r.Observe(OutcomeSuccess, 20*time.Millisecond)
	r.Observe(OutcomeSuccess, 30*time.Millisecond)
	r.Observe(OutcomeDuplicate, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.total.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.total.WithLabelValues(OutcomeDuplicate)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.total.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.duration))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	r := NewRegistrations()
	r.Observe(OutcomeError, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `gophauth_registrations_total{outcome="error"} 1`)
	assert.Contains(t, string(body), `gophauth_registrations_total{outcome="success"} 0`)
	assert.Contains(t, string(body), "gophauth_registration_duration_seconds_count 1")
	assert.Contains(t, string(body), "go_goroutines")
}
