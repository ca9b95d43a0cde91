package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/acquisitions/user-api/docs"
	"github.com/acquisitions/user-api/internal/api/handler"
	"github.com/acquisitions/user-api/internal/api/middleware"
	"github.com/acquisitions/user-api/internal/core/service"
	"github.com/acquisitions/user-api/internal/infrastructure/config"
	"github.com/acquisitions/user-api/internal/infrastructure/db/postgres"
	redisdb "github.com/acquisitions/user-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("userapi"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, log)

	rateLimit := middleware.RateLimit(redisdb.NewRateLimiter(rdb), log)
	authRequired := middleware.Auth(cfg.JWTSecret)

	secureCookies := cfg.Env != "development"
	authHandler := handler.NewAuthHandler(authService, authService.TokenTTL(), secureCookies)
	userHandler := handler.NewUserHandler(userService)

	// --- Auth routes (anonymous, guest-tier rate limit) ---
	auth := e.Group("/api/auth", rateLimit)
	auth.POST("/sign-up", authHandler.SignUp)
	auth.POST("/sign-in", authHandler.SignIn)
	auth.POST("/sign-out", authHandler.SignOut)

	// --- User routes (authenticated, role-tier rate limit after auth) ---
	users := e.Group("/api/users", authRequired, rateLimit)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
