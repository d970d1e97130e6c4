package metrics

import (
	"net/http"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "challengebot"

// PrometheusRecorder implements Recorder using Prometheus counters.
type PrometheusRecorder struct {
	updates    *prom.CounterVec
	challenges *prom.CounterVec
	toggles    *prom.CounterVec
	reminders  *prom.CounterVec
	errors     *prom.CounterVec
}

// NewPrometheusRecorder constructs the counters and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		updates: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Telegram updates handled by kind",
		}, []string{"kind"}),
		challenges: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "challenges_started_total",
			Help:      "Challenges started by length in days",
		}, []string{"days"}),
		toggles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "task_toggles_total",
			Help:      "Task toggles by task and resulting state",
		}, []string{"task", "state"}),
		reminders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_total",
			Help:      "Reminder phrases handed out by category",
		}, []string{"category"}),
		errors: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed operations by name",
		}, []string{"op"}),
	}
	reg.MustRegister(pr.updates, pr.challenges, pr.toggles, pr.reminders, pr.errors)
	return pr
}

func (p *PrometheusRecorder) IncUpdate(kind string) {
	p.updates.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncChallengeStarted(days int) {
	p.challenges.WithLabelValues(strconv.Itoa(days)).Inc()
}

func (p *PrometheusRecorder) IncTaskToggle(task string, done bool) {
	state := "undone"
	if done {
		state = "done"
	}
	p.toggles.WithLabelValues(task, state).Inc()
}

func (p *PrometheusRecorder) IncReminder(category string) {
	p.reminders.WithLabelValues(category).Inc()
}

func (p *PrometheusRecorder) IncError(op string) {
	p.errors.WithLabelValues(op).Inc()
}

// HTTPHandler serves the metrics of reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
