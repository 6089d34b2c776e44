package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/99minutos/journal-system/internal/api/docs"
	"github.com/99minutos/journal-system/internal/api/handler"
	"github.com/99minutos/journal-system/internal/api/middleware"
	"github.com/99minutos/journal-system/internal/core/ports"
)

// Dependencies holds everything the HTTP layer needs. Storage is wired in
// main; the router only sees ports.
type Dependencies struct {
	Auth     ports.AuthService
	Journals ports.JournalService
	Tokens   ports.AccessTokenCodec
	Users    ports.UserRepository
	Checks   []handler.ReadinessCheck
	// AuthRateLimit is the per-IP requests/second allowed on /auth. Zero disables it.
	AuthRateLimit float64
	Log           zerolog.Logger
}

// publicRoutes never resolve a caller identity.
var publicRoutes = []middleware.Route{
	{Method: http.MethodPost, Path: "/auth/register"},
	{Method: http.MethodPost, Path: "/auth/login"},
	{Method: http.MethodPost, Path: "/auth/refresh"},
	{Method: http.MethodGet, Path: "/health"},
	{Method: http.MethodGet, Path: "/health/ready"},
	{Method: http.MethodGet, Path: "/metrics"},
	{Method: http.MethodGet, Path: "/swagger/*"},
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(middleware.Metrics())
	e.Use(middleware.Authenticate(deps.Tokens, deps.Users, deps.Log, publicRoutes...))

	requireAuth := middleware.RequireAuth()

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)

	auth := e.Group("/auth")
	if deps.AuthRateLimit > 0 {
		auth.Use(authRateLimiter(deps.AuthRateLimit))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, requireAuth)

	e.GET("/me", authHandler.Me, requireAuth)

	// --- Journal routes ---
	journalHandler := handler.NewJournalHandler(deps.Journals)

	journals := e.Group("/journal", requireAuth)
	journals.GET("", journalHandler.List)
	journals.POST("", journalHandler.Create)
	journals.GET("/:id", journalHandler.Get)
	journals.PUT("/:id", journalHandler.Update)
	journals.DELETE("/:id", journalHandler.Delete)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Checks...)

	e.GET("/health", healthHandler.Liveness)        // liveness: is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func authRateLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
	})
}
