package api

import (
	"context"
	"encoding/json"

	"github.com/netpanel/netpanel-go/internal/core/domain"
	"github.com/netpanel/netpanel-go/internal/transport"
)

// AuthService is the auth collaborator: login, registration, token refresh.
type AuthService struct {
	http *transport.Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token and user profile. The
// server wraps the pair in a data envelope; failure payloads carry a
// human-readable error field which ends up in the returned error's details.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.UserProfile, error) {
	resp, err := s.http.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return "", nil, domain.ErrLoginFailed.WithCause(err)
	}

	var payload struct {
		Data struct {
			Token string             `json:"token"`
			User  domain.UserProfile `json:"user"`
		} `json:"data"`
	}
	if err := transport.ParseResponse(resp, &payload); err != nil {
		return "", nil, err
	}
	if payload.Data.Token == "" {
		return "", nil, domain.ErrLoginFailed.WithDetails("server issued no token")
	}

	return payload.Data.Token, &payload.Data.User, nil
}

// Register creates a new account. The payload is server-defined and passed
// through untouched.
func (s *AuthService) Register(ctx context.Context, data any) (json.RawMessage, error) {
	return postRaw(ctx, s.http, "/auth/register", data)
}

// RefreshToken asks the server for a fresh session token for the current
// credential.
func (s *AuthService) RefreshToken(ctx context.Context) (json.RawMessage, error) {
	return postRaw(ctx, s.http, "/auth/refresh", nil)
}
