// Package metric provides Prometheus instrumentation for the NetPanel client.
//
// All record methods are nil-safe: a nil *Metrics disables instrumentation,
// so the request pipeline and session manager never need to branch on
// whether metrics were configured.
package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the client-side instrument set.
type Metrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	sessionRejections prometheus.Counter
	loginAttempts     prometheus.Counter
	loginFailures     prometheus.Counter
}

// New creates the metric set and registers it with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netpanel",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Outbound API requests by method and status class.",
		}, []string{"method", "class"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "netpanel",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Outbound API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		sessionRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "netpanel",
			Subsystem: "client",
			Name:      "session_rejections_total",
			Help:      "Responses that invalidated the stored session.",
		}),
		loginAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "netpanel",
			Subsystem: "client",
			Name:      "login_attempts_total",
			Help:      "Login calls issued.",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "netpanel",
			Subsystem: "client",
			Name:      "login_failures_total",
			Help:      "Login calls that returned a failure result.",
		}),
	}

	reg.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.sessionRejections,
		m.loginAttempts,
		m.loginFailures,
	)
	return m
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(method string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, statusClass(status)).Inc()
	m.requestDuration.WithLabelValues(method).Observe(seconds)
}

// SessionRejected records a credential-rejected response.
func (m *Metrics) SessionRejected() {
	if m == nil {
		return
	}
	m.sessionRejections.Inc()
}

// LoginAttempt records the start of a login call.
func (m *Metrics) LoginAttempt() {
	if m == nil {
		return
	}
	m.loginAttempts.Inc()
}

// LoginFailure records a failed login call.
func (m *Metrics) LoginFailure() {
	if m == nil {
		return
	}
	m.loginFailures.Inc()
}

// statusClass maps an HTTP status to its class label ("2xx", "4xx", ...).
// Status 0 means the request never produced a response.
func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
