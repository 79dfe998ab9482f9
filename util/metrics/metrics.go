package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fieldrental",
			Name:      "booking_created_total",
			Help:      "Count of bookings created.",
		},
	)

	bookingDecision = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fieldrental",
			Name:      "booking_decision_total",
			Help:      "Count of admin decisions over bookings.",
		},
		[]string{"decision"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fieldrental",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled by users.",
		},
	)

	bookingExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fieldrental",
			Name:      "booking_expired_total",
			Help:      "Count of pending bookings auto-cancelled after their slot passed.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingDecision, bookingCancelled, bookingExpired)
	})
}

func IncBookingCreated() { bookingCreated.Inc() }
func IncBookingDecision(d string) { bookingDecision.WithLabelValues(d).Inc() }
func IncBookingCancelled() { bookingCancelled.Inc() }
func AddBookingExpired(n int64) { bookingExpired.Add(float64(n)) }
