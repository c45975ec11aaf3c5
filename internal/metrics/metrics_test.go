package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncWebhookEvent("issue_credential_v2_0", "done")
	m.IncWebhookEvent("issue_credential_v2_0", "done")
	m.IncWebhookEvent("connections", "active")
	m.IncBroadcastDropped()
	m.StreamOpened()
	m.StreamOpened()
	m.StreamClosed()
	m.IncScanResult("unknown")
	m.ObserveEndpoint("/scanner", time.Now())

	assert.Equal(t, float64(2), testutil.ToFloat64(m.WebhookEvents.WithLabelValues("issue_credential_v2_0", "done")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.WebhookEvents.WithLabelValues("connections", "active")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BroadcastDropped))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ActiveStreams))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ScanResults.WithLabelValues("unknown")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncWebhookEvent("ping", "")
		m.IncBroadcastDropped()
		m.StreamOpened()
		m.StreamClosed()
		m.IncScanResult("iuv")
		m.ObserveEndpoint("/", time.Now())
	})
}
