package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/daybook/journal-api/docs"
	"github.com/daybook/journal-api/internal/api/handler"
	"github.com/daybook/journal-api/internal/api/middleware"
	"github.com/daybook/journal-api/internal/core/domain"
	"github.com/daybook/journal-api/internal/core/ports"
	"github.com/daybook/journal-api/internal/core/service"
	"github.com/daybook/journal-api/internal/infrastructure/config"
	mongodb "github.com/daybook/journal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/daybook/journal-api/internal/infrastructure/db/redis"
	"github.com/daybook/journal-api/internal/infrastructure/http/handlers"
	"github.com/daybook/journal-api/internal/pkg/credential"
	"github.com/daybook/journal-api/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, sink ports.AuditSink, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("journal"))

	// --- Core dependencies ---
	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	hasher := credential.NewHasher(cfg.Auth.BcryptCost)
	lockout := domain.NewLockoutPolicy(cfg.Auth.LockoutThreshold, cfg.Auth.LockoutDuration)

	userRepo := mongodb.NewUserRepository(db)
	entryRepo := mongodb.NewEntryRepository(db)

	authService := service.NewAuthService(userRepo, hasher, issuer, lockout, sink, nil, log)
	userService := service.NewUserService(userRepo, sink, log)
	entryService := service.NewEntryService(entryRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	entryHandler := handler.NewEntryHandler(entryService)

	authRequired := middleware.Auth(issuer)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)
	throttled := middleware.RateLimit(limiter, log)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register, throttled)
	e.POST("/auth/login", authHandler.Login, throttled)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout, authRequired)

	// --- Protected routes ---
	v1 := e.Group("/v1", authRequired)
	v1.GET("/me", userHandler.Me)
	v1.POST("/entries", entryHandler.Create)
	v1.GET("/entries", entryHandler.List)
	v1.GET("/entries/:id", entryHandler.Get)
	v1.PUT("/entries/:id", entryHandler.Update)
	v1.DELETE("/entries/:id", entryHandler.Delete)
	v1.GET("/insights", entryHandler.Insights,
		middleware.RequireRole(userRepo, domain.RoleProfessional, domain.RoleAdministrator))

	admin := v1.Group("/admin", middleware.RequireRole(userRepo, domain.RoleAdministrator))
	admin.GET("/users", userHandler.List)
	admin.PUT("/users/:id/role", userHandler.ChangeRole)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
