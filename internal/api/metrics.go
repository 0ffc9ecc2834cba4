package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type clientMetrics struct {
	// RED metrics
	reqs *prometheus.CounterVec
	errs *prometheus.CounterVec
	durs *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) *clientMetrics {
	const namespace = "storefront"
	const subsystem = "api"

	m := &clientMetrics{
		reqs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "Number of calls to the storefront backend",
		}, []string{"method"}),
		errs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Number of failed calls to the storefront backend",
		}, []string{"method", "code"}),
		durs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Duration of calls to the storefront backend",
		}, []string{"method"}),
	}

	reg.MustRegister(m.reqs, m.errs, m.durs)
	return m
}

// observe starts timing method; call the returned func with the call's error.
func (m *clientMetrics) observe(method string) func(error) error {
	start := time.Now()
	return func(err error) error {
		m.reqs.WithLabelValues(method).Inc()
		m.durs.WithLabelValues(method).Observe(time.Since(start).Seconds())
		if err != nil {
			code := "transport"
			var apiErr *Error
			if errors.As(err, &apiErr) {
				code = strconv.Itoa(apiErr.StatusCode)
			} else if errors.Is(err, errMalformed) {
				code = "malformed"
			}
			m.errs.WithLabelValues(method, code).Inc()
		}
		return err
	}
}
