// Package metrics owns the Prometheus collectors of the heartbeat service
// and the registry they are exposed from.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace          = "heartbeat"
	labelIP            = "ip"
	labelDevice        = "device"
	statusValid        = "valid"
	statusProvided     = "provided"
	statusUnknownValue = "unknown"
)

// Metrics holds the service collectors. Each instance has its own
// registry so tests and multiple servers never collide.
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	malformed prometheus.Counter
}

// New creates and registers the collectors, plus the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Heartbeats received, by whether the client address and device were usable.",
			},
			[]string{labelIP, labelDevice},
		),
		malformed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "malformed_bodies_total",
				Help:      "Heartbeat bodies that could not be decoded as a JSON object.",
			},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.malformed,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveHeartbeat counts one heartbeat. knownIP and knownDevice report
// whether the sanitized values differ from their fallbacks.
func (m *Metrics) ObserveHeartbeat(knownIP, knownDevice bool) {
	ip := statusUnknownValue
	if knownIP {
		ip = statusValid
	}

	device := statusUnknownValue
	if knownDevice {
		device = statusProvided
	}

	m.requests.WithLabelValues(ip, device).Inc()
}

// ObserveMalformedBody counts a body that fell back to defaults.
func (m *Metrics) ObserveMalformedBody() {
	m.malformed.Inc()
}

// Registry returns the underlying registry. Only tests gather from it
// directly; scrapes go through Handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
