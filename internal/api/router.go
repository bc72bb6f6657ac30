package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bitforge/playground-api/internal/api/handler"
	"github.com/bitforge/playground-api/internal/api/middleware"
	"github.com/bitforge/playground-api/internal/core/service"
	"github.com/bitforge/playground-api/internal/infrastructure/config"
	mongodb "github.com/bitforge/playground-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bitforge/playground-api/internal/infrastructure/db/redis"
	"github.com/bitforge/playground-api/internal/infrastructure/http/handlers"
	"github.com/bitforge/playground-api/internal/security"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	audit service.AuditSink,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("playground"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	codeRepo := mongodb.NewCodeRepository(db)
	profileCache := redisdb.NewProfileCache(rdb)
	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	accountService := service.NewAccountService(userRepo, codeRepo, hasher, tokens, profileCache, audit, log)
	accountHandler := handler.NewAccountHandler(accountService, tokens.TTL())
	authMiddleware := middleware.Auth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	// --- Account routes ---
	user := e.Group("/api/user")
	user.POST("/signup", accountHandler.Signup)
	user.POST("/login", accountHandler.Login)
	user.POST("/logout", accountHandler.Logout, optionalAuth)
	user.GET("/details", accountHandler.UserDetails, authMiddleware)
	user.GET("/my-codes", accountHandler.MyCodes, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
