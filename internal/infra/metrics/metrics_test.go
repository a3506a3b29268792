//go:build unit

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.BookingCreated()
	m.BookingCreated()
	m.BookingRejected("slot_full")
	m.StatusChanged("pending", "confirmed")
	m.PendingSwept(3)
	m.PendingSwept(0)
	m.OutboxRelayed("sent", 2)
	m.SlotCacheResult(true)
	m.SlotLockWait(5 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues("slot_full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusChanges.WithLabelValues("pending", "confirmed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.pendingSwept))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.outboxRelayed.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotCache.WithLabelValues("true")))
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("GET", "/api/services/:id/slots", 200, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/services/:id/slots", "200")))
}

func TestMetricsNilSafe(t *testing.T) {
	var b *BookingMetrics
	b.BookingCreated()
	b.BookingRejected("x")
	b.SlotLockWait(time.Second)
	b.StatusChanged("a", "b")
	b.PaymentOutcome("succeeded")
	b.PendingSwept(1)
	b.OutboxRelayed("sent", 1)
	b.SlotCacheResult(false)

	var h *HTTPMetrics
	h.Observe("GET", "/", 200, time.Second)
}
