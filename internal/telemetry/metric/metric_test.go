package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	// Must not panic.
	m.ObserveRequest("GET", 200, 0.01)
	m.SessionRejected()
	m.LoginAttempt()
	m.LoginFailure()
}

func TestMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("GET", 200, 0.01)
	m.ObserveRequest("GET", 200, 0.02)
	m.ObserveRequest("POST", 401, 0.01)
	m.SessionRejected()
	m.LoginAttempt()
	m.LoginFailure()

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "2xx")); got != 2 {
		t.Errorf("requests GET/2xx = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "4xx")); got != 1 {
		t.Errorf("requests POST/4xx = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.sessionRejections); got != 1 {
		t.Errorf("session rejections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.loginAttempts); got != 1 {
		t.Errorf("login attempts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.loginFailures); got != 1 {
		t.Errorf("login failures = %v, want 1", got)
	}
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{200, "2xx"},
		{301, "3xx"},
		{401, "4xx"},
		{503, "5xx"},
		{0, "error"},
	}
	for _, tt := range tests {
		if got := statusClass(tt.status); got != tt.want {
			t.Errorf("statusClass(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
