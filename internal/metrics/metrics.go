// Package metrics exposes invocation counters for the serve mode.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts transition invocations by backend and outcome and tracks
// their wall-clock duration.
type Recorder struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "t8nkit",
			Name:      "invocations_total",
			Help:      "Transition tool invocations by backend and outcome.",
		}, []string{"backend", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "t8nkit",
			Name:      "invocation_duration_seconds",
			Help:      "Wall-clock duration of transition tool invocations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend"}),
	}
	reg.MustRegister(r.invocations, r.duration)
	return r
}

// Observe records one finished invocation.
func (r *Recorder) Observe(backend, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.invocations.WithLabelValues(backend, outcome).Inc()
	r.duration.WithLabelValues(backend).Observe(d.Seconds())
}
