package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mtcleaning/account-service/docs"
	"github.com/mtcleaning/account-service/internal/api/handler"
	"github.com/mtcleaning/account-service/internal/api/middleware"
	"github.com/mtcleaning/account-service/internal/core/ports"
)

// Dependencies groups everything the router wires into handlers.
type Dependencies struct {
	Accounts ports.AccountService
	// Limiter is nil when rate limiting is disabled.
	Limiter ports.RateLimiter
	// Checks feed the readiness endpoint; a nil check reports "disabled".
	Checks map[string]handler.DependencyCheck
	Log    zerolog.Logger

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Pre(middleware.CORS())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: deps.Registerer,
	}))

	// --- Operational routes ---
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Privileged routes ---
	accountHandler := handler.NewAccountHandler(deps.Accounts)
	auditHandler := handler.NewAuditHandler(deps.Accounts)
	guard := []echo.MiddlewareFunc{
		middleware.RateLimit(deps.Limiter, deps.Log),
		middleware.Auth(),
	}

	// Edge-function paths first, so functions.invoke URLs map one-to-one.
	for _, prefix := range []string{"/functions/v1", ""} {
		e.POST(prefix+"/create-user", accountHandler.Create, guard...)
		e.POST(prefix+"/delete-user", accountHandler.Delete, guard...)
	}
	e.GET("/v1/audit", auditHandler.List, guard...)

	return e
}
