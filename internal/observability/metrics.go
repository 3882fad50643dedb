package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "xeghep"

var (
	RidesPosted       = promauto.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "rides_posted_total", Help: "Total number of rides posted"})
	SeatsReserved     = promauto.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "seats_reserved_total", Help: "Seats removed from ride inventory by bookings"})
	BookingsCreated   = promauto.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "bookings_created_total", Help: "Bookings created by origin"}, []string{"origin"})
	BookingTransition = promauto.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "booking_transitions_total", Help: "Booking status transitions"}, []string{"status"})
	RequestsSubmitted = promauto.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "requests_submitted_total", Help: "Ride requests submitted"})
	RequestOutcomes   = promauto.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "request_outcomes_total", Help: "Ride requests accepted or cancelled"}, []string{"status"})
	ReportLatency     = promauto.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "report_latency_seconds", Help: "Report aggregation latency seconds"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
