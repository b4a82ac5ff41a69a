package web

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Derivations     *prometheus.CounterVec
}

// NewMetrics registers the explorer collectors plus Go runtime collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keiho_http_requests_total",
				Help: "Total HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "keiho_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds by route",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"route"},
		),

		Derivations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keiho_view_derivations_total",
				Help: "Total view derivations by attempt mode",
			},
			[]string{"attempt"},
		),
	}

	m.Registry.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.Derivations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) observeDerivation(attempt bool) {
	m.Derivations.WithLabelValues(strconv.FormatBool(attempt)).Inc()
}
