package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ethicsreview/internal/metrics"
)

func TestMetrics_CountersExposed(t *testing.T) {
	m := metrics.New()
	m.CommandDone("submit_proposal", "success")
	m.CommandDone("submit_proposal", "success")
	m.FetchFailed("proposal")

	n, err := testutil.GatherAndCount(m.Registry(), "ethicsreview_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `ethicsreview_commands_total{operation="submit_proposal",outcome="success"} 2`))
	assert.True(t, strings.Contains(body, `ethicsreview_fetch_failures_total{entity="proposal"} 1`))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	m.CommandDone("x", "y")
	m.FetchFailed("proposal")
	m.EventApplied("ReviewSubmitted")
	assert.Nil(t, m.Registry())
}
