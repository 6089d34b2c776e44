package handler

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/journal-system/internal/api/middleware"
	"github.com/99minutos/journal-system/internal/core/domain"
)

var (
	alice = domain.Principal{UserID: 1, Email: "alice@example.com", Role: domain.RoleUser}
	admin = domain.Principal{UserID: 9, Email: "root@example.com", Role: domain.RoleAdmin}
)

// newContext builds an echo.Context with the validator registered and, when
// caller is non-nil, an authenticated principal.
func newContext(method, path, body string, caller *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller != nil {
		c.Set(middleware.PrincipalKey, *caller)
	}
	return c, rec
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}
