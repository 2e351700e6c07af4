package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rideshare", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rideshare",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	BookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rideshare", Name: "bookings_created_total", Help: "Bookings created, by service type"},
		[]string{"service_type"},
	)
	BookingStatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rideshare", Name: "booking_status_updates_total", Help: "Booking status changes, by new status"},
		[]string{"status"},
	)
	RidesCreated = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideshare", Name: "rides_created_total", Help: "Companion rides recorded"})

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rideshare", Name: "notification_failures_total", Help: "Booking event deliveries that failed"},
		[]string{"event"},
	)
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "rideshare", Name: "websocket_clients", Help: "Connected websocket clients"})
)

// KnownStatusLabel keeps the status label bounded; free-form statuses are
// counted as "other".
func KnownStatusLabel(status string) string {
	switch status {
	case "pending", "confirmed", "in_progress", "completed", "cancelled":
		return status
	default:
		return "other"
	}
}
