package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/netpanel/netpanel-go/internal/core/domain"
	"github.com/netpanel/netpanel-go/internal/credstore"
)

// fakeAuth is a scriptable Authenticator.
type fakeAuth struct {
	token  string
	user   *domain.UserProfile
	err    error
	called int

	// onLogin runs inside the login call, while it is in flight.
	onLogin func()
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, *domain.UserProfile, error) {
	f.called++
	if f.onLogin != nil {
		f.onLogin()
	}
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

func adminAuth() *fakeAuth {
	return &fakeAuth{
		token: "T1",
		user:  &domain.UserProfile{ID: 1, Role: domain.RoleAdmin},
	}
}

func TestLogin_Success(t *testing.T) {
	store := credstore.NewMemory()
	m := NewManager(store, adminAuth())

	if err := m.Login(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if !m.IsAuthenticated() {
		t.Error("not authenticated after successful login")
	}
	if !m.IsAdmin() {
		t.Error("IsAdmin() = false, want true")
	}
	if m.Err() != "" {
		t.Errorf("Err() = %q, want empty", m.Err())
	}

	if v, ok := store.Get(credstore.KeyToken); !ok || v != "T1" {
		t.Errorf("stored token = %q, %v, want T1, true", v, ok)
	}
	raw, ok := store.Get(credstore.KeyUser)
	if !ok {
		t.Fatal("user profile not persisted")
	}
	var stored domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("stored profile is not JSON: %v", err)
	}
	if stored.ID != 1 || stored.Role != domain.RoleAdmin {
		t.Errorf("stored profile = %+v, want id=1 role=admin", stored)
	}
}

func TestLogin_ServerFailureMessage(t *testing.T) {
	store := credstore.NewMemory()
	m := NewManager(store, &fakeAuth{
		err: domain.ErrLoginFailed.WithDetails("Invalid credentials"),
	})

	err := m.Login(context.Background(), "a@b.com", "bad")
	if !errors.Is(err, domain.ErrLoginFailed) {
		t.Fatalf("Login() error = %v, want ErrLoginFailed", err)
	}
	if !strings.Contains(err.Error(), "Invalid credentials") {
		t.Errorf("error %q missing server message", err)
	}

	if m.IsAuthenticated() {
		t.Error("authenticated after failed login")
	}
	if m.Err() != "Invalid credentials" {
		t.Errorf("Err() = %q, want %q", m.Err(), "Invalid credentials")
	}
	if m.Snapshot().Loading {
		t.Error("loading still true after failed login")
	}
	if _, ok := store.Get(credstore.KeyToken); ok {
		t.Error("token persisted despite failed login")
	}
}

func TestLogin_GenericFailureMessage(t *testing.T) {
	m := NewManager(credstore.NewMemory(), &fakeAuth{
		err: errors.New("connection refused"),
	})

	if err := m.Login(context.Background(), "a@b.com", "pw"); err == nil {
		t.Fatal("Login() = nil, want error")
	}
	if m.Err() != "Login failed" {
		t.Errorf("Err() = %q, want generic %q", m.Err(), "Login failed")
	}
}

func TestLogin_ErrorClearedOnRetry(t *testing.T) {
	auth := &fakeAuth{err: domain.ErrLoginFailed.WithDetails("Invalid credentials")}
	m := NewManager(credstore.NewMemory(), auth)

	m.Login(context.Background(), "a@b.com", "bad")
	if m.Err() == "" {
		t.Fatal("expected error from first attempt")
	}

	auth.err = nil
	auth.token = "T2"
	auth.user = &domain.UserProfile{ID: 2, Role: domain.RoleDistributor}
	if err := m.Login(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("retry Login() error = %v", err)
	}
	if m.Err() != "" {
		t.Errorf("Err() = %q after successful retry, want empty", m.Err())
	}
	if !m.IsDistributor() {
		t.Error("IsDistributor() = false after distributor login")
	}
}

func TestLogin_LoadingWindow(t *testing.T) {
	var m *Manager
	auth := adminAuth()
	auth.onLogin = func() {
		if !m.Snapshot().Loading {
			t.Error("loading = false while login call is in flight")
		}
	}
	m = NewManager(credstore.NewMemory(), auth)

	if m.Snapshot().Loading {
		t.Error("loading = true before any login")
	}
	if err := m.Login(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if m.Snapshot().Loading {
		t.Error("loading = true after login resolved")
	}
}

func TestLogin_OverwritesExistingSession(t *testing.T) {
	store := credstore.NewMemory()
	auth := adminAuth()
	m := NewManager(store, auth)

	m.Login(context.Background(), "a@b.com", "pw")

	auth.token = "T2"
	auth.user = &domain.UserProfile{ID: 9, Role: domain.RoleDistributor}
	if err := m.Login(context.Background(), "c@d.com", "pw"); err != nil {
		t.Fatalf("second Login() error = %v", err)
	}

	if v, _ := store.Get(credstore.KeyToken); v != "T2" {
		t.Errorf("stored token = %q, want overwritten T2", v)
	}
	if m.Role() != domain.RoleDistributor {
		t.Errorf("Role() = %q, want distributor", m.Role())
	}
}

func TestPairingInvariant(t *testing.T) {
	store := credstore.NewMemory()
	m := NewManager(store, adminAuth())

	check := func(stage string) {
		t.Helper()
		s := m.Snapshot()
		if (s.Token != "") != (s.User != nil) {
			t.Errorf("%s: token/user pairing broken: token=%q user=%v", stage, s.Token, s.User)
		}
		_, haveToken := store.Get(credstore.KeyToken)
		_, haveUser := store.Get(credstore.KeyUser)
		if haveToken != haveUser {
			t.Errorf("%s: store pairing broken: token=%v user=%v", stage, haveToken, haveUser)
		}
	}

	check("initial")
	m.Login(context.Background(), "a@b.com", "pw")
	check("after login")
	m.Invalidate()
	check("after invalidate")
	m.Login(context.Background(), "a@b.com", "pw")
	m.Logout()
	check("after logout")
}

func TestLogout_Idempotent(t *testing.T) {
	store := credstore.NewMemory()
	m := NewManager(store, adminAuth())

	// Logout while already anonymous must not error or change state.
	m.Logout()
	if m.IsAuthenticated() {
		t.Error("authenticated after logout of anonymous session")
	}

	m.Login(context.Background(), "a@b.com", "pw")
	m.Logout()
	m.Logout()

	if m.IsAuthenticated() {
		t.Error("authenticated after logout")
	}
	if _, ok := store.Get(credstore.KeyToken); ok {
		t.Error("token still stored after logout")
	}
	if m.Role() != domain.RoleGuest {
		t.Errorf("Role() = %q after logout, want guest", m.Role())
	}
}

func TestCheckAuth_RestoresPersistedSession(t *testing.T) {
	store := credstore.NewMemory()
	store.Set(credstore.KeyToken, "T1")
	store.Set(credstore.KeyUser, `{"id":5,"email":"a@b.com","role":"distributor"}`)

	m := NewManager(store, adminAuth())
	if !m.CheckAuth() {
		t.Fatal("CheckAuth() = false with both keys present")
	}

	if !m.IsAuthenticated() {
		t.Error("not authenticated after restoration")
	}
	user := m.User()
	if user == nil || user.ID != 5 || user.Role != domain.RoleDistributor {
		t.Errorf("restored profile = %+v, want id=5 role=distributor", user)
	}
}

func TestCheckAuth_SingleKeyYieldsAnonymous(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"token only", credstore.KeyToken, "T1"},
		{"user only", credstore.KeyUser, `{"id":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := credstore.NewMemory()
			store.Set(tt.key, tt.val)

			m := NewManager(store, adminAuth())
			if m.CheckAuth() {
				t.Error("CheckAuth() = true with a single key")
			}
			if m.IsAuthenticated() {
				t.Error("authenticated with a single key")
			}
		})
	}
}

func TestCheckAuth_MalformedProfile(t *testing.T) {
	store := credstore.NewMemory()
	store.Set(credstore.KeyToken, "T1")
	store.Set(credstore.KeyUser, "{not valid json")

	m := NewManager(store, adminAuth())
	if m.CheckAuth() {
		t.Error("CheckAuth() = true with malformed profile")
	}
	if m.IsAuthenticated() {
		t.Error("authenticated with malformed profile")
	}
	// The unusable pair is discarded rather than left half-valid.
	if _, ok := store.Get(credstore.KeyToken); ok {
		t.Error("token kept alongside malformed profile")
	}
}

func TestInvalidate(t *testing.T) {
	store := credstore.NewMemory()
	invalidated := 0
	m := NewManager(store, adminAuth(), WithInvalidatedHandler(func() {
		invalidated++
	}))

	m.Login(context.Background(), "a@b.com", "pw")
	m.Invalidate()

	if m.IsAuthenticated() {
		t.Error("authenticated after Invalidate()")
	}
	if _, ok := store.Get(credstore.KeyToken); ok {
		t.Error("token still stored after Invalidate()")
	}
	if _, ok := store.Get(credstore.KeyUser); ok {
		t.Error("user still stored after Invalidate()")
	}
	if invalidated != 1 {
		t.Errorf("invalidated handler fired %d times, want 1", invalidated)
	}
}
