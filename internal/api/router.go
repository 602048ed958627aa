package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/claimwise/insurance-portal/docs"
	"github.com/claimwise/insurance-portal/internal/api/handler"
	"github.com/claimwise/insurance-portal/internal/api/middleware"
	"github.com/claimwise/insurance-portal/internal/core/ports"
)

// Deps are the services the routes are wired to.
type Deps struct {
	Log        zerolog.Logger
	Store      ports.DomainStore
	Sessions   ports.SessionManager
	Auth       ports.AuthService
	Dashboards ports.DashboardService
	Records    ports.RecordService
	Claims     ports.ClaimService
	Dispatcher handler.ClaimDispatcher

	// Idempotency and Redis are nil when REDIS_ADDR is unset.
	Idempotency handler.IdempotencyStore
	Redis       handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Metrics())
	e.Use(requestLogger(d.Log))

	idem := handler.NewIdempotency(d.Idempotency, d.Log)
	authHandler := handler.NewAuthHandler(d.Sessions, d.Auth)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboards)
	userHandler := handler.NewUserHandler(d.Dashboards, d.Records, idem)
	policyHandler := handler.NewPolicyHandler(d.Dashboards, d.Records, idem)
	claimHandler := handler.NewClaimHandler(d.Dashboards, d.Records, d.Claims, d.Dispatcher, idem)
	paymentHandler := handler.NewPaymentHandler(d.Dashboards, d.Records, idem)
	healthHandler := handler.NewHealthHandler(d.Store, d.Redis)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)

	// --- Portal routes (bearer token bound to the live session) ---
	v1 := e.Group("/v1", middleware.Auth(d.Auth, d.Sessions))
	v1.GET("/dashboard", dashboardHandler.Get)

	v1.GET("/users", userHandler.List)
	v1.POST("/users", userHandler.Create)
	v1.PUT("/users/:id", userHandler.Update)

	v1.GET("/policies", policyHandler.List)
	v1.POST("/policies", policyHandler.Create)
	v1.PUT("/policies/:id", policyHandler.Update)

	v1.GET("/claims", claimHandler.List)
	v1.POST("/claims", claimHandler.Submit)
	v1.PUT("/claims/:id", claimHandler.Update)
	v1.POST("/claims/:id/transition", claimHandler.Transition)
	v1.POST("/claims/transitions/batch", claimHandler.TransitionBatch)

	v1.GET("/payments", paymentHandler.List)
	v1.POST("/payments", paymentHandler.Create)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – is the data loaded?

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
