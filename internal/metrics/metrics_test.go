package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	registry := GetRegistry()
	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordPickSaved(t *testing.T) {
	before := testutil.ToFloat64(PicksSavedTotal.WithLabelValues("ZEUS", "created"))
	RecordPickSaved("ZEUS", true, 7)
	RecordPickSaved("ZEUS", false, 7)
	assert.Equal(t, before+1, testutil.ToFloat64(PicksSavedTotal.WithLabelValues("ZEUS", "created")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(PicksSavedTotal.WithLabelValues("ZEUS", "updated")), 1.0)
}

func TestRecordJobRun(t *testing.T) {
	before := testutil.ToFloat64(JobRunsTotal.WithLabelValues("scan", "failure"))
	RecordJobRun("scan", time.Now(), errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(JobRunsTotal.WithLabelValues("scan", "failure")))
}

func TestCacheLookupLabels(t *testing.T) {
	RecordCacheLookup("odds", true)
	assert.GreaterOrEqual(t, testutil.ToFloat64(ProviderCacheLookupsTotal.WithLabelValues("odds", "hit")), 1.0)
}

func TestHandlerServesNamespace(t *testing.T) {
	RecordUpstreamFailure("api_sports")
	UpdateTeamsRefreshed(30)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "godbot_upstream_failures_total"))
	assert.True(t, strings.Contains(body, "godbot_team_stats_refreshed 30"))
}
