package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prom.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncUpdate("command")
	pr.IncChallengeStarted(21)
	pr.IncTaskToggle("sport", true)
	pr.IncTaskToggle("sport", true)
	pr.IncTaskToggle("sport", false)
	pr.IncReminder("late")
	pr.IncError("toggle")

	assert.Equal(t, 2.0, counterValue(t, pr.toggles.WithLabelValues("sport", "done")))
	assert.Equal(t, 1.0, counterValue(t, pr.toggles.WithLabelValues("sport", "undone")))
	assert.Equal(t, 1.0, counterValue(t, pr.challenges.WithLabelValues("21")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 5)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncReminder("lunch")

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `challengebot_reminders_total{category="lunch"} 1`))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncUpdate("x")
	r.IncTaskToggle("work", true)
}
