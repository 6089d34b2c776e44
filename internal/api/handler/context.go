package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/journal-system/internal/api/middleware"
	"github.com/99minutos/journal-system/internal/core/domain"
)

// principal returns the identity resolved by the Authenticate middleware.
// Handlers behind RequireAuth always have one; the check guards against a
// route registered without it.
func principal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return p, nil
}
