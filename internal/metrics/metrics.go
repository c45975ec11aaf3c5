package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the mediator.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	WebhookEvents    *prometheus.CounterVec
	BroadcastDropped prometheus.Counter
	ActiveStreams    prometheus.Gauge
	ScanResults      *prometheus.CounterVec
	EndpointLatency  *prometheus.HistogramVec
}

// New creates the metrics and registers them in reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		WebhookEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Agent webhook events handled, by topic and state",
		}, []string{"topic", "state"}),
		BroadcastDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_dropped_total",
			Help: "Events dropped because a subscriber queue was full",
		}),
		ActiveStreams: factory.NewGauge(prometheus.GaugeOpts{
			Name: "notification_streams_active",
			Help: "Clients currently connected to the notification stream",
		}),
		ScanResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scanner_results_total",
			Help: "Scanned payloads, by classification",
		}, []string{"type"}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// IncWebhookEvent counts a handled webhook
func (m *Metrics) IncWebhookEvent(topic, state string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(topic, state).Inc()
}

// IncBroadcastDropped counts an event lost on a full queue
func (m *Metrics) IncBroadcastDropped() {
	if m == nil {
		return
	}
	m.BroadcastDropped.Inc()
}

// StreamOpened tracks a new stream client
func (m *Metrics) StreamOpened() {
	if m == nil {
		return
	}
	m.ActiveStreams.Inc()
}

// StreamClosed tracks a disconnected stream client
func (m *Metrics) StreamClosed() {
	if m == nil {
		return
	}
	m.ActiveStreams.Dec()
}

// IncScanResult counts a classified scan
func (m *Metrics) IncScanResult(typ string) {
	if m == nil {
		return
	}
	m.ScanResults.WithLabelValues(typ).Inc()
}

// ObserveEndpoint records the latency of an endpoint call started at start
func (m *Metrics) ObserveEndpoint(endpoint string, start time.Time) {
	if m == nil {
		return
	}
	m.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
