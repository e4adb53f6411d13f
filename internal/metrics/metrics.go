package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "turnos_api",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome.",
		},
		[]string{"outcome"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "turnos_api",
			Name:      "notifications_total",
			Help:      "WhatsApp notifications by final status.",
		},
		[]string{"status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookings, notifications)
	})
}

func IncBooking(outcome string) {
	bookings.WithLabelValues(outcome).Inc()
}

func IncNotification(status string) {
	notifications.WithLabelValues(status).Inc()
}
