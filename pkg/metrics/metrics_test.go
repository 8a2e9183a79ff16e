package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/api/v1/services", "200", time.Millisecond)
		m.ObserveDBQuery("query", nil, time.Millisecond)
		m.SetDBStats("postgres", 1, 1, 0, 0)
		m.IncTxRetry("serializable")
		m.IncAppointmentTransition("completed")
		m.ObserveSettlement("created", 12.5)
	})
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("barber-service", reg)

	m.IncAppointmentTransition("completed")
	m.IncAppointmentTransition("completed")
	m.IncAppointmentTransition("canceled")
	m.ObserveSettlement("created", 12.5)
	m.ObserveSettlement("skipped", 0)
	m.ObserveDBQuery("exec", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitionsTotal.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitionsTotal.WithLabelValues("canceled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.settlementsTotal.WithLabelValues("skipped")))
	assert.Equal(t, 12.5, testutil.ToFloat64(m.settledAmount.WithLabelValues()))
}
