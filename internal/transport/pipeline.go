package transport

import (
	"crypto/rand"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/netpanel/netpanel-go/internal/credstore"
	"github.com/netpanel/netpanel-go/internal/telemetry/logger"
	"github.com/netpanel/netpanel-go/internal/telemetry/metric"
)

// InvalidatedHook is called after a response rejected the session credential
// and the credential store has been cleared. The hosting application decides
// how to react (the console UI routes to its login entry point; the CLI
// prints a re-login hint). The original response is propagated to the caller
// regardless.
type InvalidatedHook func()

// Pipeline is an http.RoundTripper that authorizes outbound requests and
// reacts to session rejection.
//
// The token is read from the credential store on every request, not from the
// in-memory session state, so the pipeline stays usable outside the session
// manager's context. The pipeline itself holds no per-session state.
type Pipeline struct {
	store   credstore.Store
	base    http.RoundTripper
	limiter *rate.Limiter
	metrics *metric.Metrics
	log     logger.Logger
	hook    InvalidatedHook
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithBase sets the underlying round tripper (default http.DefaultTransport).
func WithBase(rt http.RoundTripper) PipelineOption {
	return func(p *Pipeline) {
		p.base = rt
	}
}

// WithInvalidatedHook sets the session-invalidated callback.
func WithInvalidatedHook(hook InvalidatedHook) PipelineOption {
	return func(p *Pipeline) {
		p.hook = hook
	}
}

// WithMetrics enables request instrumentation.
func WithMetrics(m *metric.Metrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithLogger sets the pipeline logger (default logger.Default()).
func WithLogger(l logger.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.log = l
	}
}

// WithRateLimit throttles outbound requests client-side.
func WithRateLimit(rps float64, burst int) PipelineOption {
	return func(p *Pipeline) {
		p.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewPipeline creates a request pipeline backed by the given credential store.
func NewPipeline(store credstore.Store, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		store: store,
		base:  http.DefaultTransport,
		log:   logger.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RoundTrip implements http.RoundTripper.
func (p *Pipeline) RoundTrip(req *http.Request) (*http.Response, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	// RoundTrippers must not mutate the caller's request.
	out := req.Clone(req.Context())

	// No token means the request goes out unauthenticated; the server
	// decides whether that is acceptable for the endpoint.
	if token, ok := p.store.Get(credstore.KeyToken); ok && token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	out.Header.Set("X-Request-ID", newRequestID())

	start := time.Now()
	resp, err := p.base.RoundTrip(out)
	if err != nil {
		p.metrics.ObserveRequest(req.Method, 0, time.Since(start).Seconds())
		return nil, err
	}
	p.metrics.ObserveRequest(req.Method, resp.StatusCode, time.Since(start).Seconds())

	if resp.StatusCode == http.StatusUnauthorized {
		p.sessionRejected(req)
	}

	return resp, nil
}

// sessionRejected clears the persisted credential pair and raises the hook.
// Clearing an already-cleared store is a no-op, so concurrent rejections
// degrade gracefully.
func (p *Pipeline) sessionRejected(req *http.Request) {
	p.log.Warn("session rejected by server",
		"method", req.Method,
		"path", req.URL.Path,
	)

	p.store.Remove(credstore.KeyToken)
	p.store.Remove(credstore.KeyUser)
	p.metrics.SessionRejected()

	if p.hook != nil {
		p.hook()
	}
}

// newRequestID returns a fresh ULID for the X-Request-ID header.
func newRequestID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
