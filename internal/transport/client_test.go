package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/netpanel/netpanel-go/internal/core/domain"
	"github.com/netpanel/netpanel-go/internal/credstore"
)

func newTestClient(srvURL string) *Client {
	return NewClient(srvURL, NewPipeline(credstore.NewMemory()))
}

func TestNewClient_NormalizesBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"localhost:8080", "http://localhost:8080"},
		{"http://example.com/api/", "http://example.com/api"},
		{"https://example.com/api", "https://example.com/api"},
	}
	for _, tt := range tests {
		c := NewClient(tt.in, http.DefaultTransport)
		if c.BaseURL() != tt.want {
			t.Errorf("BaseURL(%q) = %q, want %q", tt.in, c.BaseURL(), tt.want)
		}
	}
}

func TestClient_SetsJSONContentType(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	resp.Body.Close()

	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
}

func TestClient_QueryEncoding(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	q := url.Values{}
	q.Set("page", "2")
	q.Set("level", "error")
	resp, err := newTestClient(srv.URL).Get(context.Background(), "/logs", q)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	resp.Body.Close()

	if gotQuery.Get("page") != "2" || gotQuery.Get("level") != "error" {
		t.Errorf("query = %v, want page=2 level=error", gotQuery)
	}
}

func TestParseResponse_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":1}}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).Get(context.Background(), "/users/1", nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	var payload struct {
		Data struct {
			ID int `json:"id"`
		} `json:"data"`
	}
	if err := ParseResponse(resp, &payload); err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if payload.Data.ID != 1 {
		t.Errorf("decoded id = %d, want 1", payload.Data.ID)
	}
}

func TestParseResponse_NilTargetDrainsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":"ok"}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).Post(context.Background(), "/invoices/1/pay", nil)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if err := ParseResponse(resp, nil); err != nil {
		t.Errorf("ParseResponse(nil) error = %v", err)
	}
	if _, err := resp.Body.Read(make([]byte, 1)); err == nil {
		t.Error("body still readable after ParseResponse")
	}
}

func TestParseResponse_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     *domain.Error
		wantDetails string
	}{
		{
			name:        "unauthorized with server message",
			status:      401,
			body:        `{"error":"token expired"}`,
			wantErr:     domain.ErrUnauthorized,
			wantDetails: "token expired",
		},
		{
			name:    "not found",
			status:  404,
			body:    `{"error":"no such isp"}`,
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "validation error",
			status:  400,
			body:    `{"error":"name is required"}`,
			wantErr: domain.ErrBadRequest,
		},
		{
			name:    "server error with non-JSON body",
			status:  500,
			body:    `gateway exploded`,
			wantErr: domain.ErrServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := newTestClient(srv.URL).Get(context.Background(), "/x", nil)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}

			err = ParseResponse(resp, &struct{}{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseResponse() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantDetails != "" && !strings.Contains(err.Error(), tt.wantDetails) {
				t.Errorf("error %q missing server details %q", err, tt.wantDetails)
			}
		})
	}
}
