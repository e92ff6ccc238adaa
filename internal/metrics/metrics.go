package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "railres"

// Metrics holds the service collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	bookings       *prometheus.CounterVec
	cancellations  *prometheus.CounterVec
	refunded       prometheus.Counter
	seatsAvailable *prometheus.GaugeVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome.",
		}, []string{"outcome"}),
		cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancellations_total",
			Help:      "Cancelled bookings by refund tier.",
		}, []string{"tier"}),
		refunded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunded_amount_minor_total",
			Help:      "Sum of refunds issued, in minor currency units.",
		}),
		seatsAvailable: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "seats_available",
			Help:      "Available seats per train and fare class.",
		}, []string{"train", "class"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(m.bookings, m.cancellations, m.refunded, m.seatsAvailable, m.httpRequests, m.httpDuration)
	return m
}

// Booking outcomes
const (
	OutcomeConfirmed = "confirmed"
	OutcomeNoSeats   = "no_seats"
	OutcomeFailed    = "failed"
)

func (m *Metrics) BookingAttempt(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Cancellation(tier string, refund int64) {
	if m == nil {
		return
	}
	m.cancellations.WithLabelValues(tier).Inc()
	m.refunded.Add(float64(refund))
}

func (m *Metrics) SetSeatsAvailable(train, class string, seats int) {
	if m == nil {
		return
	}
	m.seatsAvailable.WithLabelValues(train, class).Set(float64(seats))
}

func (m *Metrics) ForgetTrain(train string) {
	if m == nil {
		return
	}
	m.seatsAvailable.DeletePartialMatch(prometheus.Labels{"train": train})
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}
