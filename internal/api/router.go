package api

import (
	"context"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/inkroom/cms/docs"
	"github.com/inkroom/cms/internal/api/handler"
	"github.com/inkroom/cms/internal/api/middleware"
	"github.com/inkroom/cms/internal/core/ports"
	"github.com/inkroom/cms/internal/core/service"
	"github.com/inkroom/cms/internal/infrastructure/config"
	mongorepo "github.com/inkroom/cms/internal/infrastructure/db/mongo"
	redisstore "github.com/inkroom/cms/internal/infrastructure/db/redis"
	"github.com/inkroom/cms/pkg/logger"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth     ports.AuthService
	Articles ports.ArticleService
	Users    ports.UserAdminService
	Checks   map[string]handler.Check
}

// MetricsOptions selects where HTTP metrics are registered and served from.
type MetricsOptions struct {
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewServices wires repositories and services on top of the given stores.
func NewServices(cfg *config.Config, db *mongo.Database, rdb *redis.Client) Services {
	users := mongorepo.NewUserRepository(db)
	articles := mongorepo.NewArticleRepository(db)
	sessions := redisstore.NewSessionStore(rdb)
	passwords := service.PasswordPolicy{MinLength: cfg.PasswordMinLength}

	return Services{
		Auth: service.NewAuthService(users, sessions, service.AuthConfig{
			JWTSecret: cfg.JWTSecret,
			TokenTTL:  cfg.TokenTTL,
			Passwords: passwords,
		}, logger.Component("auth")),
		Articles: service.NewArticleService(articles, logger.Component("articles")),
		Users:    service.NewUserAdminService(users, passwords, logger.Component("users")),
		Checks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return db.Client().Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	}
}

// NewRouter builds the Echo instance for production use, with metrics
// registered on the default Prometheus registry.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	return newEcho(NewServices(cfg, db, rdb), MetricsOptions{
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	}, log)
}

func newEcho(s Services, m MetricsOptions, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "cms",
		Registerer: m.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(s.Auth)
	articleHandler := handler.NewArticleHandler(s.Articles)
	userHandler := handler.NewUserHandler(s.Users)
	requireAuth := middleware.Auth(s.Auth)
	optionalAuth := middleware.OptionalAuth(s.Auth)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)

	// --- Public article reads ---
	e.GET("/v1/articles/:id", articleHandler.Get, optionalAuth)

	// --- Authenticated API ---
	v1 := e.Group("/v1", requireAuth)
	v1.GET("/profile", authHandler.Profile)
	v1.PUT("/profile", authHandler.UpdateProfile)

	v1.GET("/articles", articleHandler.List)
	v1.POST("/articles", articleHandler.Create)
	v1.PUT("/articles/:id", articleHandler.Update)

	v1.GET("/moderation/articles", articleHandler.ModerationList)
	v1.POST("/moderation/articles/:id/toggle", articleHandler.Toggle)

	v1.GET("/admin/users", userHandler.List)
	v1.POST("/admin/users", userHandler.Create)
	v1.PUT("/admin/users/:id", userHandler.Update)
	v1.DELETE("/admin/users/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(s.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: m.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
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
