package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/journal-system/internal/core/domain"
)

// RequireAuth rejects requests that Authenticate left anonymous.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := PrincipalFrom(c); !ok {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
