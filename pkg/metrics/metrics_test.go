package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_DomainCounters(t *testing.T) {
	m := NewWithRegisterer("meety", prometheus.NewRegistry())

	m.BookingCreated("pending")
	m.BookingCreated("pending")
	m.BookingConflict()
	m.BookingStatusChanged("missed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("meety", "pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingConflicts.WithLabelValues("meety")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingStatusChanges.WithLabelValues("meety", "missed")))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.BookingCreated("pending")
		m.BookingConflict()
		m.BookingStatusChanged("completed")
	})
}
