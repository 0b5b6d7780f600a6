package command

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/netpanel/netpanel-go/internal/credstore"
)

func seedSession(t *testing.T, env *Env, token string) {
	t.Helper()
	if err := env.Store.Set(credstore.KeyToken, token); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	user, _ := json.Marshal(sampleUser())
	if err := env.Store.Set(credstore.KeyUser, string(user)); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestLoginCommand(t *testing.T) {
	cmd := LoginCommand()
	if cmd.Name != "login" {
		t.Errorf("Name = %q, want %q", cmd.Name, "login")
	}

	flagNames := make(map[string]bool)
	for _, f := range cmd.Flags {
		flagNames[f.Names()[0]] = true
	}
	for _, name := range []string{"email", "password"} {
		if !flagNames[name] {
			t.Errorf("login should have --%s flag", name)
		}
	}
}

func TestLoginAction_Success(t *testing.T) {
	server := newMockServer()
	defer server.Close()
	server.handle("/auth/login", loginHandler("t-abc"))

	env := testEnv(server)
	out, err := runApp(env, "login", "--email", "ada@example.com", "--password", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if !strings.Contains(out, "Logged in as Ada (admin)") {
		t.Errorf("unexpected output: %q", out)
	}

	if token, ok := env.Store.Get(credstore.KeyToken); !ok || token != "t-abc" {
		t.Errorf("stored token = %q, %v; want %q", token, ok, "t-abc")
	}
	if _, ok := env.Store.Get(credstore.KeyUser); !ok {
		t.Error("user profile not persisted")
	}
}

func TestLoginAction_ServerRejects(t *testing.T) {
	server := newMockServer()
	defer server.Close()
	server.handle("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		errorResponse(w, http.StatusUnauthorized, "Invalid credentials")
	})

	env := testEnv(server)
	_, err := runApp(env, "login", "--email", "ada@example.com", "--password", "wrong")
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("error = %q, want %q", err.Error(), "Invalid credentials")
	}

	if _, ok := env.Store.Get(credstore.KeyToken); ok {
		t.Error("failed login must not persist a token")
	}
}

func TestLogoutAction(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	env := testEnv(server)
	seedSession(t, env, "t-abc")

	out, err := runApp(env, "logout")
	if err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !strings.Contains(out, "Logged out") {
		t.Errorf("unexpected output: %q", out)
	}

	if _, ok := env.Store.Get(credstore.KeyToken); ok {
		t.Error("token survived logout")
	}
	if _, ok := env.Store.Get(credstore.KeyUser); ok {
		t.Error("user profile survived logout")
	}
}

func TestWhoamiAction(t *testing.T) {
	server := newMockServer()
	defer server.Close()

	env := testEnv(server)

	if _, err := runApp(env, "whoami"); err == nil {
		t.Error("whoami without a session should fail")
	}

	seedSession(t, env, "t-abc")
	out, err := runApp(env, "whoami")
	if err != nil {
		t.Fatalf("whoami failed: %v", err)
	}
	if !strings.Contains(out, "ada@example.com") {
		t.Errorf("output missing identity: %q", out)
	}
}

func TestRegisterAction(t *testing.T) {
	server := newMockServer()
	defer server.Close()
	server.handle("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		dataResponse(w, http.StatusCreated, map[string]any{"id": 8})
	})

	env := testEnv(server)
	_, err := runApp(env, "register", "--data", `{"email":"new@example.com","password":"pw"}`)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, ok := env.Store.Get(credstore.KeyToken); ok {
		t.Error("register must not create a session")
	}
}

func TestRefreshAction(t *testing.T) {
	server := newMockServer()
	defer server.Close()
	server.handle("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer t-old" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer t-old")
		}
		dataResponse(w, http.StatusOK, map[string]any{"token": "t-new"})
	})

	env := testEnv(server)

	if _, err := runApp(env, "refresh"); err == nil {
		t.Error("refresh without a session should fail")
	}

	seedSession(t, env, "t-old")
	if _, err := runApp(env, "refresh"); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if token, _ := env.Store.Get(credstore.KeyToken); token != "t-new" {
		t.Errorf("stored token = %q, want %q", token, "t-new")
	}
}
