package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	bootstrap *prometheus.CounterVec
	decisions *prometheus.CounterVec
	checks    *prometheus.HistogramVec
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	const namespace = "storefront"

	m := &Metrics{
		bootstrap: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bootstrap_total",
			Help:      "Number of session bootstrap attempts by outcome",
		}, []string{"outcome"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guard",
			Name:      "decisions_total",
			Help:      "Number of route guard evaluations by decision",
		}, []string{"decision"}),
		checks: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "guard",
			Name:      "check_duration_seconds",
			Help:      "Duration of shared session checks",
		}, []string{"result"}),
	}

	reg.MustRegister(m.bootstrap, m.decisions, m.checks)
	return m
}
