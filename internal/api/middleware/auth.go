package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/journal-system/internal/core/domain"
	"github.com/99minutos/journal-system/internal/core/ports"
)

// PrincipalKey is the echo.Context key holding the resolved domain.Principal.
const PrincipalKey = "auth.principal"

// Route identifies a registered route by method and path pattern, as
// reported by echo.Context.Path.
type Route struct {
	Method string
	Path   string
}

// Authenticate resolves the caller from a bearer access token. It never
// rejects: a missing, malformed or expired token, or a token whose user no
// longer exists, leaves the request anonymous. Routes in exempt skip
// resolution entirely.
func Authenticate(codec ports.AccessTokenCodec, users ports.UserRepository, log zerolog.Logger, exempt ...Route) echo.MiddlewareFunc {
	skip := make(map[Route]struct{}, len(exempt))
	for _, r := range exempt {
		skip[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := skip[Route{Method: c.Request().Method, Path: c.Path()}]; ok {
				return next(c)
			}

			if p, ok := resolve(c, codec, users, log); ok {
				c.Set(PrincipalKey, p)
			}
			return next(c)
		}
	}
}

func resolve(c echo.Context, codec ports.AccessTokenCodec, users ports.UserRepository, log zerolog.Logger) (domain.Principal, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return domain.Principal{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return domain.Principal{}, false
	}

	claims, err := codec.Validate(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.Principal{}, false
	}

	user, err := users.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			log.Warn().Err(err).Int64("user_id", claims.UserID).Msg("user lookup failed, request left anonymous")
		}
		return domain.Principal{}, false
	}

	return domain.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, true
}

// PrincipalFrom returns the identity set by Authenticate, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	return p, ok
}
