package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/99minutos/users-service/internal/api/handler"
	"github.com/99minutos/users-service/internal/api/middleware"
	"github.com/99minutos/users-service/internal/core/domain"
	"github.com/99minutos/users-service/internal/core/ports"
)

// Dependencies is everything the router wires into handlers and middleware.
type Dependencies struct {
	Users  ports.UserService
	Auth   ports.AuthService
	Tokens ports.AccessTokenVerifier
	Reader ports.UserReader
	Health *handler.HealthHandler

	// Limiter guards the token endpoints. Nil disables rate limiting.
	Limiter middleware.Limiter

	AllowedHosts []string
	Log          zerolog.Logger

	// Registerer and Gatherer back the HTTP metrics and /metrics. They
	// default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if len(d.AllowedHosts) == 0 {
		d.AllowedHosts = []string{"*"}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.TrustedHost(d.AllowedHosts))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))
	e.Use(middleware.Authenticate(d.Tokens, d.Reader, d.Log))

	authenticated := middleware.Requires(domain.ScopeAuthenticated)
	adminOnly := middleware.Requires(domain.ScopeAuthenticated, string(domain.RoleAdmin))
	limited := middleware.RateLimit(d.Limiter, d.Log)

	// --- Token routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/users/token", authHandler.Login, limited)
	e.POST("/users/refresh_token", authHandler.Refresh, limited)

	// --- User routes ---
	userHandler := handler.NewUserHandler(d.Users)
	e.POST("/users", userHandler.Create)
	e.GET("/users", userHandler.List)
	e.PATCH("/users", userHandler.UpdateProfile, authenticated)
	e.DELETE("/users", userHandler.Remove, authenticated)
	e.GET("/users/profile", userHandler.Profile, authenticated)
	e.GET("/users/:id", userHandler.Get)
	e.PATCH("/users/:id", userHandler.Update, adminOnly)

	// --- Probes, metrics and docs (no auth required) ---
	if d.Health != nil {
		e.GET("/alive", d.Health.Alive)
		e.GET("/health", d.Health.Liveness)        // liveness  – is the process alive?
		e.GET("/health/ready", d.Health.Readiness) // readiness – are dependencies up?
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
