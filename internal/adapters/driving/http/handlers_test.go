package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/keyfold/keyfold-core/internal/core/domain"
)

// Mock service for testing

type mockAuthService struct {
	registerFn    func(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error)
	loginFn       func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	verifyTokenFn func(ctx context.Context, authorization string) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) VerifyToken(ctx context.Context, authorization string) (string, error) {
	if m.verifyTokenFn != nil {
		return m.verifyTokenFn(ctx, authorization)
	}
	return "", errors.New("not implemented")
}

func newTestServer(svc *mockAuthService) *Server {
	logger := slog.New(slog.DiscardHandler)
	return NewServer(DefaultConfig(), svc, logger)
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleRegister(t *testing.T) {
	tests := []struct {
		name       string
		registerFn func(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error)
		wantStatus int
	}{
		{
			name: "success",
			registerFn: func(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
				return &domain.RegisterResponse{UserID: "user-123"}, nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "username taken",
			registerFn: func(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
				return nil, domain.ErrUsernameTaken
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "invalid input",
			registerFn: func(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
				return nil, domain.ErrInvalidInput
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "store failure",
			registerFn: func(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
				return nil, domain.ErrStoreFailure
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockAuthService{registerFn: tt.registerFn})

			rec := postJSON(t, srv.Handler(), "/api/v1/auth/register", domain.RegisterRequest{
				Username: "sam",
				Password: "foobar",
			})

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestHandleRegister_InvalidBody(t *testing.T) {
	srv := newTestServer(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleLogin(t *testing.T) {
	tests := []struct {
		name       string
		loginFn    func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		wantStatus int
		wantToken  string
	}{
		{
			name: "success",
			loginFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
				return &domain.LoginResponse{Token: "tok-abc"}, nil
			},
			wantStatus: http.StatusOK,
			wantToken:  "tok-abc",
		},
		{
			name: "wrong credentials",
			loginFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
				return nil, domain.ErrLoginFailed
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "store failure",
			loginFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
				return nil, domain.ErrStoreFailure
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockAuthService{loginFn: tt.loginFn})

			rec := postJSON(t, srv.Handler(), "/api/v1/auth/login", domain.LoginRequest{
				Username: "sam",
				Password: "foobar",
			})

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			if tt.wantToken != "" {
				var resp domain.LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Token != tt.wantToken {
					t.Errorf("expected token %s, got %s", tt.wantToken, resp.Token)
				}
			}
		})
	}
}

func TestHandleLogin_GenericErrorBody(t *testing.T) {
	srv := newTestServer(&mockAuthService{
		loginFn: func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
			// Engine errors carry internal detail; none of it may
			// reach the wire.
			return nil, errors.Join(domain.ErrLoginFailed, errors.New("stored hash mismatch for user-123"))
		},
	})

	rec := postJSON(t, srv.Handler(), "/api/v1/auth/login", domain.LoginRequest{
		Username: "sam",
		Password: "hunter1",
	})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "access denied" {
		t.Errorf("expected generic error body, got %q", resp.Error)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}
