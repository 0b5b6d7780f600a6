package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/netpanel/netpanel-go/internal/core/domain"
	"github.com/netpanel/netpanel-go/internal/credstore"
	"github.com/netpanel/netpanel-go/internal/telemetry/logger"
	"github.com/netpanel/netpanel-go/internal/telemetry/metric"
)

// Authenticator is the external auth collaborator.
//
// Login returns the issued bearer token and the server-owned user profile,
// or an error whose details carry the server-supplied failure message.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (token string, user *domain.UserProfile, err error)
}

// State is a read-only snapshot of the session aggregate.
type State struct {
	Token   string
	User    *domain.UserProfile
	Loading bool
	Err     string
}

// IsAuthenticated reports whether a session credential is held.
func (s State) IsAuthenticated() bool {
	return s.Token != ""
}

// Role returns the session role, falling back to guest.
func (s State) Role() domain.Role {
	return s.User.EffectiveRole()
}

// Manager owns the session aggregate.
//
// Invariant: token and user are set and cleared together, in memory and in
// the credential store, never independently.
//
// Concurrent Login calls are not mutually exclusive: both completions mutate
// the aggregate and the result is last-write-wins by completion order. The
// mutex below provides Go memory safety only; it deliberately does not
// serialize whole login flows.
type Manager struct {
	store   credstore.Store
	auth    Authenticator
	log     logger.Logger
	metrics *metric.Metrics

	// onInvalidated is raised by Invalidate; the hosting application
	// reacts (the console routes to its login entry point).
	onInvalidated func()

	mu      sync.RWMutex
	token   string
	user    *domain.UserProfile
	loading bool
	errMsg  string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the session logger (default logger.Default()).
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// WithMetrics enables login instrumentation.
func WithMetrics(mx *metric.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mx
	}
}

// WithInvalidatedHandler sets the callback raised when the session is
// rejected by the server.
func WithInvalidatedHandler(fn func()) Option {
	return func(m *Manager) {
		m.onInvalidated = fn
	}
}

// NewManager creates a session manager over the given store and auth
// collaborator. The manager starts Anonymous; call CheckAuth to restore a
// persisted session.
func NewManager(store credstore.Store, auth Authenticator, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		auth:  auth,
		log:   logger.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login authenticates with the server and, on success, persists and adopts
// the issued credential pair. Logging in while already authenticated simply
// overwrites the session.
//
// Failures are returned as a structured error carrying the server-supplied
// message when one exists; the same message is retained in the aggregate's
// Err field. The loading flag is true strictly while the call is in flight,
// cleared on both paths.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	m.loading = true
	m.errMsg = ""
	m.mu.Unlock()

	m.metrics.LoginAttempt()

	// The network call runs outside the lock; overlapping logins race to
	// completion and the later completion wins.
	token, user, err := m.auth.Login(ctx, email, password)

	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.loading = false }()

	if err != nil {
		m.metrics.LoginFailure()
		failure := loginFailure(err)
		m.errMsg = failure.Details
		m.log.Warn("login failed", "email", email, "reason", failure.Details)
		return failure
	}

	m.token = token
	m.user = user

	if err := m.store.Set(credstore.KeyToken, token); err != nil {
		m.log.Error("persist token failed", "error", err)
	}
	profile, err := json.Marshal(user)
	if err == nil {
		if err := m.store.Set(credstore.KeyUser, string(profile)); err != nil {
			m.log.Error("persist user profile failed", "error", err)
		}
	}

	m.log.Info("login succeeded", "email", email, "role", string(user.EffectiveRole()))
	return nil
}

// loginFailure normalizes an authenticator error into ErrLoginFailed with a
// human-readable message in Details.
func loginFailure(err error) *domain.Error {
	var de *domain.Error
	if errors.As(err, &de) && de.Details != "" {
		return domain.ErrLoginFailed.WithDetails(de.Details).WithCause(err)
	}
	return domain.ErrLoginFailed.WithDetails(domain.ErrLoginFailed.Message).WithCause(err)
}

// Logout clears the session locally. No network call is made. Logging out
// while Anonymous is a no-op.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// CheckAuth restores a persisted session. It reports true and hydrates the
// aggregate when both credential keys are present and the stored profile
// decodes; any other state, including a malformed profile, resolves to "no
// session" without error.
func (m *Manager) CheckAuth() bool {
	token, haveToken := m.store.Get(credstore.KeyToken)
	rawUser, haveUser := m.store.Get(credstore.KeyUser)

	if !haveToken || !haveUser || token == "" {
		return false
	}

	var user domain.UserProfile
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		// A half-usable pair is worse than none: drop both keys so the
		// store keeps the pairing invariant too.
		m.store.Remove(credstore.KeyToken)
		m.store.Remove(credstore.KeyUser)
		m.log.Warn("stored user profile is malformed, discarding session")
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = &user
	return true
}

// Invalidate handles session rejection: the credential pair is cleared from
// memory and store, and the invalidated handler is raised. Wire this as the
// request pipeline's invalidated hook.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.clearLocked()
	m.mu.Unlock()

	if m.onInvalidated != nil {
		m.onInvalidated()
	}
}

// clearLocked resets the aggregate and removes both store keys. Callers hold
// the mutex. Removals of absent keys are no-ops, so repeated clears are safe.
func (m *Manager) clearLocked() {
	m.token = ""
	m.user = nil
	m.store.Remove(credstore.KeyToken)
	m.store.Remove(credstore.KeyUser)
}

// Snapshot returns a copy of the current aggregate.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{
		Token:   m.token,
		User:    m.user.Clone(),
		Loading: m.loading,
		Err:     m.errMsg,
	}
}

// IsAuthenticated reports whether a session credential is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

// Role returns the session role, falling back to guest.
func (m *Manager) Role() domain.Role {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.EffectiveRole()
}

// IsAdmin reports whether the session holds the administrator role.
func (m *Manager) IsAdmin() bool {
	return m.Role() == domain.RoleAdmin
}

// IsDistributor reports whether the session holds the distributor role.
func (m *Manager) IsDistributor() bool {
	return m.Role() == domain.RoleDistributor
}

// User returns a copy of the logged-in profile, or nil when Anonymous.
func (m *Manager) User() *domain.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone()
}

// Err returns the last login failure message, empty when none.
func (m *Manager) Err() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errMsg
}
