// Package metrics exposes Prometheus instrumentation for status changes and
// simulated actions
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shiftboard"

// UnknownStatus labels transitions whose requested status did not parse
const UnknownStatus = "unknown"

// Recorder owns a registry and the service collectors. A nil *Recorder is a no-op.
type Recorder struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	actions     *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	exports     *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Status transitions by entity, target status and outcome.",
		}, []string{"entity", "status", "outcome"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Simulated actions by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_duration_seconds",
			Help:      "Duration of simulated actions.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 1.5, 2, 3, 5},
		}, []string{"outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "CSV exports by entity.",
		}, []string{"entity"}),
	}
	r.registry.MustRegister(
		r.transitions,
		r.actions,
		r.duration,
		r.exports,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry is exposed for tests and extra collectors
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Transition counts one status change attempt
func (r *Recorder) Transition(entity, status string, err error) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(entity, status, outcome(err)).Inc()
}

// Action records a finished simulated action. Matches asyncx.Simulator.OnDone.
func (r *Recorder) Action(_ string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	o := outcome(err)
	r.actions.WithLabelValues(o).Inc()
	r.duration.WithLabelValues(o).Observe(elapsed.Seconds())
}

// Export counts one CSV export
func (r *Recorder) Export(entity string) {
	if r == nil {
		return
	}
	r.exports.WithLabelValues(entity).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
