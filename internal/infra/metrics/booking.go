package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "booking"

// BookingMetrics records booking, lifecycle and background job outcomes.
// A nil *BookingMetrics is a valid no-op recorder.
type BookingMetrics struct {
	bookingsTotal   *prometheus.CounterVec
	slotLockWait    prometheus.Histogram
	statusChanges   *prometheus.CounterVec
	paymentOutcomes *prometheus.CounterVec
	pendingSwept    prometheus.Counter
	outboxRelayed   *prometheus.CounterVec
	slotCache       *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "create_total",
			Help:      "Create-booking attempts by result",
		}, []string{"result"}),
		slotLockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "slot_lock_wait_seconds",
			Help:      "Time spent waiting for the per-slot advisory lock",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5},
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "status_transitions_total",
			Help:      "Appointment status transitions",
		}, []string{"from", "to"}),
		paymentOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "outcomes_total",
			Help:      "Payment outcomes by kind",
		}, []string{"outcome"}),
		pendingSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "pending_swept_total",
			Help:      "Pending appointments cancelled by the sweep",
		}),
		outboxRelayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "outbox_relayed_total",
			Help:      "Outbox jobs processed by the relay",
		}, []string{"status"}),
		slotCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "slots",
			Name:      "cache_lookups_total",
			Help:      "Slot candidate cache lookups",
		}, []string{"hit"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.slotLockWait, m.statusChanges, m.paymentOutcomes,
		m.pendingSwept, m.outboxRelayed, m.slotCache)
	return m
}

func (m *BookingMetrics) BookingCreated() {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues("created").Inc()
}

func (m *BookingMetrics) BookingRejected(reason string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(reason).Inc()
}

func (m *BookingMetrics) SlotLockWait(d time.Duration) {
	if m == nil {
		return
	}
	m.slotLockWait.Observe(d.Seconds())
}

func (m *BookingMetrics) StatusChanged(from, to string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(from, to).Inc()
}

func (m *BookingMetrics) PaymentOutcome(outcome string) {
	if m == nil {
		return
	}
	m.paymentOutcomes.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) PendingSwept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.pendingSwept.Add(float64(n))
}

func (m *BookingMetrics) OutboxRelayed(status string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.outboxRelayed.WithLabelValues(status).Add(float64(n))
}

func (m *BookingMetrics) SlotCacheResult(hit bool) {
	if m == nil {
		return
	}
	m.slotCache.WithLabelValues(strconv.FormatBool(hit)).Inc()
}
