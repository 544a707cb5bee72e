// Package metrics exposes Prometheus collectors for the RPC surface and the
// job/application workflow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jobportal"

// Metrics is safe to use through a nil pointer; every recorder is then a
// no-op.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequestsTotal    *prometheus.CounterVec
	RPCRequestDuration  *prometheus.HistogramVec
	RPCRequestsInFlight prometheus.Gauge

	ApplicationsSubmitted    prometheus.Counter
	ApplicationsWithdrawn    prometheus.Counter
	ApplicationStatusChanges *prometheus.CounterVec
	JobStatusChanges         *prometheus.CounterVec
	NotificationFailures     prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RPCRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_requests_total",
				Help:      "Total gRPC requests",
			},
			[]string{"method", "code"},
		),
		RPCRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_request_duration_seconds",
				Help:      "gRPC request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method"},
		),
		RPCRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "rpc_requests_in_flight",
				Help:      "Current number of gRPC requests being processed",
			},
		),
		ApplicationsSubmitted: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "applications_submitted_total",
				Help:      "Applications created",
			},
		),
		ApplicationsWithdrawn: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "applications_withdrawn_total",
				Help:      "Applications withdrawn by their applicant",
			},
		),
		ApplicationStatusChanges: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "application_status_changes_total",
				Help:      "Application status updates by target status",
			},
			[]string{"status"},
		),
		JobStatusChanges: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "job_status_changes_total",
				Help:      "Job status updates by target status",
			},
			[]string{"status"},
		),
		NotificationFailures: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notification_failures_total",
				Help:      "Notifications that could not be delivered",
			},
		),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ApplicationSubmitted() {
	if m == nil {
		return
	}
	m.ApplicationsSubmitted.Inc()
}

func (m *Metrics) ApplicationWithdrawn() {
	if m == nil {
		return
	}
	m.ApplicationsWithdrawn.Inc()
}

func (m *Metrics) ApplicationStatusChanged(status string) {
	if m == nil {
		return
	}
	m.ApplicationStatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) JobStatusChanged(status string) {
	if m == nil {
		return
	}
	m.JobStatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) NotificationFailed() {
	if m == nil {
		return
	}
	m.NotificationFailures.Inc()
}

// RPCStarted bumps the in-flight gauge. Call the returned func when the
// request completes.
func (m *Metrics) RPCStarted() func() {
	if m == nil {
		return func() {}
	}
	m.RPCRequestsInFlight.Inc()
	return m.RPCRequestsInFlight.Dec
}

// ObserveRPC records one finished call.
func (m *Metrics) ObserveRPC(method, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCRequestsTotal.WithLabelValues(method, code).Inc()
	m.RPCRequestDuration.WithLabelValues(method).Observe(seconds)
}
