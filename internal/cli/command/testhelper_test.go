package command

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/netpanel/netpanel-go/internal/cli/config"
	"github.com/netpanel/netpanel-go/internal/credstore"
	"github.com/netpanel/netpanel-go/internal/telemetry/logger"
)

// mockServer creates a test HTTP server with custom handlers.
type mockServer struct {
	*httptest.Server
	handlers map[string]http.HandlerFunc
}

// newMockServer creates a new mock server.
func newMockServer() *mockServer {
	m := &mockServer{
		handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Find handler by path prefix match
		for pattern, handler := range m.handlers {
			if strings.HasPrefix(r.URL.Path, pattern) {
				handler(w, r)
				return
			}
		}
		http.NotFound(w, r)
	}))
	return m
}

// handle registers a handler for a path pattern.
func (m *mockServer) handle(pattern string, handler http.HandlerFunc) {
	m.handlers[pattern] = handler
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResponse writes an error payload the way the console API does.
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// dataResponse wraps a payload in the console API data envelope.
func dataResponse(w http.ResponseWriter, status int, data any) {
	jsonResponse(w, status, map[string]any{"data": data})
}

// testEnv builds a client stack against the mock server backed by an
// in-memory credential store.
func testEnv(server *mockServer) *Env {
	cfg := config.Default()
	cfg.Server = server.URL
	cfg.Output = "json"

	store := credstore.NewMemory()
	log := logger.New(logger.Config{Level: "error", Format: "text"})
	return wireEnv(cfg, store, log)
}

// runApp runs the full CLI app with the test env injected, capturing stdout.
func runApp(env *Env, args ...string) (string, error) {
	app := App()
	app.Metadata = map[string]any{"env": env}

	var buf bytes.Buffer
	app.Writer = &buf

	fullArgs := append([]string{"netpanel-cli"}, args...)
	err := app.Run(fullArgs)
	return buf.String(), err
}

// sampleUser is the canonical profile payload used across action tests.
func sampleUser() map[string]any {
	return map[string]any{
		"id":    float64(7),
		"name":  "Ada",
		"email": "ada@example.com",
		"role":  "admin",
	}
}

// loginHandler serves a successful login with the given token.
func loginHandler(token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dataResponse(w, http.StatusOK, map[string]any{
			"token": token,
			"user":  sampleUser(),
		})
	}
}
