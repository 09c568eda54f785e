// Package metrics holds the Prometheus collectors for registrations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registration outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
)

type Registrations struct {
	registry *prometheus.Registry
	total    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewRegistrations builds the collectors on a dedicated registry, together
// with the Go runtime and process collectors.
func NewRegistrations() *Registrations {
	r := &Registrations{
		registry: prometheus.NewRegistry(),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gophauth",
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gophauth",
			Name:      "registration_duration_seconds",
			Help:      "Time spent handling a registration.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
	}

	r.registry.MustRegister(
		r.total,
		r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, o := range []string{OutcomeSuccess, OutcomeInvalid, OutcomeDuplicate, OutcomeError} {
		r.total.WithLabelValues(o)
	}

	return r
}

// Observe records one finished registration.
func (r *Registrations) Observe(outcome string, elapsed time.Duration) {
	r.total.WithLabelValues(outcome).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registrations) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry is exposed for tests and for registering extra collectors.
func (r *Registrations) Registry() *prometheus.Registry {
	return r.registry
}
