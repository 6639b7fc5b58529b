package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/interviewme/backend/docs"
	"github.com/interviewme/backend/internal/api/handler"
	"github.com/interviewme/backend/internal/api/middleware"
	"github.com/interviewme/backend/internal/core/ports"
	"github.com/interviewme/backend/internal/infrastructure/config"
	"github.com/interviewme/backend/internal/infrastructure/http/handlers"
)

const (
	bodyLimit        = "10K"
	metricsNamespace = "interview"
	metricsSubsystem = "http"
	msgRateLimited   = "Too many requests from this IP, please try again later."
)

// Deps is everything the router needs. Services are built by the caller.
type Deps struct {
	Config *config.Config
	Log    zerolog.Logger

	Sessions   ports.SessionService
	Queries    ports.SessionQueryService
	Chat       ports.ChatService
	Users      middleware.UserResolver
	Dispatcher handler.EventDispatcher

	Auth     middleware.AuthConfig
	Webhooks *middleware.WebhookVerifier

	// Checkers are pinged by the readiness probe.
	Checkers []handlers.DependencyChecker
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, cfg.IsProduction())

	// Each router owns its request metrics registry so several routers can
	// live in one process (tests).
	registry := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echomiddleware.Gzip())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  metricsNamespace,
		Subsystem:  metricsSubsystem,
		Registerer: registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	if cfg.IsProduction() {
		e.Use(rateLimiter(cfg.RateLimit))
	}

	// --- Operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler(cfg.Env)
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Checkers...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, registry},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	// Middleware is attached per route: a group-level Use would send unknown
	// paths under the prefix through Auth instead of the 404 handler.
	api := e.Group(strings.TrimRight(cfg.APIPrefix, "/"))
	authed := []echo.MiddlewareFunc{middleware.Auth(deps.Auth, deps.Users), middleware.RequireActive()}

	webhookHandler := handler.NewWebhookHandler(deps.Dispatcher, deps.Log)
	api.POST("/webhooks/identity", webhookHandler.Identity, middleware.WebhookSignature(deps.Webhooks))

	chatHandler := handler.NewChatHandler(deps.Chat)
	api.GET("/chat/token", chatHandler.Token, authed...)

	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.Queries)
	api.POST("/sessions", sessionHandler.Create, authed...)
	api.GET("/sessions/active", sessionHandler.ListActive, authed...)
	api.GET("/sessions/my-recent", sessionHandler.MyRecent, authed...)
	api.GET("/sessions/:id", sessionHandler.Get, authed...)
	api.POST("/sessions/:id/join", sessionHandler.Join, authed...)
	api.POST("/sessions/:id/end", sessionHandler.End, authed...)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			var ev *zerolog.Event
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				ev = log.Warn()
			default:
				ev = log.Info()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// rateLimiter allows cfg.Requests per client IP over cfg.Window.
func rateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		Burst:     cfg.Requests,
		ExpiresIn: cfg.Window,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/health")
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "Unable to identify client").SetInternal(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, msgRateLimited)
		},
	})
}
