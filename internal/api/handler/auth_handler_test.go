package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/99minutos/journal-system/internal/core/domain"
	"github.com/99minutos/journal-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.TokenPair, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (*domain.TokenPair, error)
	refreshFn  func(ctx context.Context, token, ip string) (*domain.TokenPair, error)
	logoutFn   func(ctx context.Context, p domain.Principal, ip string) error
	currentFn  func(ctx context.Context, p domain.Principal) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.TokenPair, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.TokenPair, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Refresh(ctx context.Context, token, ip string) (*domain.TokenPair, error) {
	return s.refreshFn(ctx, token, ip)
}

func (s *stubAuthService) Logout(ctx context.Context, p domain.Principal, ip string) error {
	return s.logoutFn(ctx, p, ip)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, p domain.Principal) (*domain.User, error) {
	return s.currentFn(ctx, p)
}

func testPair() *domain.TokenPair {
	return &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 15 * time.Minute}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.TokenPair, error) {
			if in.Email != "alice@example.com" || in.Password != "password123" || in.Role != "admin" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return testPair(), nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","password":"password123","role":"admin"}`, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp tokenPairResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "access" || resp.RefreshToken != "refresh" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
	if resp.TokenType != "Bearer" || resp.ExpiresIn != 900 {
		t.Fatalf("unexpected token metadata: %+v", resp)
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.TokenPair, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	cases := map[string]struct {
		body string
		code int
	}{
		"not json":       {`not-json`, http.StatusBadRequest},
		"missing email":  {`{"password":"password123"}`, http.StatusUnprocessableEntity},
		"bad email":      {`{"email":"nope","password":"password123"}`, http.StatusUnprocessableEntity},
		"short password": {`{"email":"a@example.com","password":"short"}`, http.StatusUnprocessableEntity},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/auth/register", tc.body, nil)
			requireHTTPError(t, h.Register(c), tc.code)
		})
	}
}

func TestAuthHandler_Register_PropagatesDomainError(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.TokenPair, error) {
			return nil, domain.ErrEmailInUse
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","password":"password123"}`, nil)
	if err := h.Register(c); !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestAuthHandler_Register_MultibytePasswordLengthDecidedByService(t *testing.T) {
	password := strings.Repeat("é", 40)
	called := false
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.TokenPair, error) {
			called = true
			if in.Password != password {
				t.Fatalf("password not forwarded intact")
			}
			return nil, domain.ErrInvalidPassword
		},
	}
	h := NewAuthHandler(stub)

	body, _ := json.Marshal(map[string]string{"email": "a@example.com", "password": password})
	c, _ := newContext(http.MethodPost, "/auth/register", string(body), nil)
	if err := h.Register(c); !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if !called {
		t.Fatalf("expected the service to judge the byte length")
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, in ports.LoginInput) (*domain.TokenPair, error) {
			if in.Email != "alice@example.com" || in.Password != "password123" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return testPair(), nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"password123"}`, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, ports.LoginInput) (*domain.TokenPair, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong-password"}`, nil)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, token, _ string) (*domain.TokenPair, error) {
			if token != "old-token" {
				return nil, domain.ErrInvalidRefreshToken
			}
			return testPair(), nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/refresh", `{"refresh_token":"old-token"}`, nil)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodPost, "/auth/refresh", `{"refresh_token":"other"}`, nil)
	if err := h.Refresh(c); !errors.Is(err, domain.ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}

	c, _ = newContext(http.MethodPost, "/auth/refresh", `{}`, nil)
	requireHTTPError(t, h.Refresh(c), http.StatusUnprocessableEntity)
}

func TestAuthHandler_Logout(t *testing.T) {
	var revoked domain.Principal
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, p domain.Principal, _ string) error {
			revoked = p
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/logout", "", &alice)
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revoked.UserID != alice.UserID {
		t.Fatalf("logout revoked wrong user: %+v", revoked)
	}

	var resp logoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Note == "" {
		t.Fatalf("expected a note about access token lifetime")
	}
}

func TestAuthHandler_Logout_Anonymous(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newContext(http.MethodPost, "/auth/logout", "", nil)
	if err := h.Logout(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	stub := &stubAuthService{
		currentFn: func(_ context.Context, p domain.Principal) (*domain.User, error) {
			return &domain.User{ID: p.UserID, Email: p.Email, Role: p.Role, PasswordHash: "secret-hash", CreatedAt: created}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodGet, "/me", "", &alice)
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "alice@example.com" || resp["role"] != "USER" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["password_hash"]; ok {
		t.Fatalf("password hash must not be exposed")
	}
}

func TestAttemptResult(t *testing.T) {
	cases := map[error]string{
		nil:                           "success",
		domain.ErrTooManyAttempts:     "throttled",
		domain.ErrInvalidCredentials:  "invalid_credentials",
		domain.ErrRefreshTokenExpired: "invalid_token",
		domain.ErrEmailInUse:          "email_in_use",
		domain.ErrInvalidPassword:     "invalid_input",
		errors.New("boom"):            "error",
	}
	for err, want := range cases {
		if got := attemptResult(err); got != want {
			t.Fatalf("attemptResult(%v) = %q, want %q", err, got, want)
		}
	}
}
