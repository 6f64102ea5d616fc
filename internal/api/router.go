package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/peopledesk/identity-api/internal/api/handler"
	"github.com/peopledesk/identity-api/internal/api/middleware"
	"github.com/peopledesk/identity-api/internal/core/domain"
	"github.com/peopledesk/identity-api/internal/core/service"
	"github.com/peopledesk/identity-api/internal/infrastructure/config"
	mongodb "github.com/peopledesk/identity-api/internal/infrastructure/db/mongo"
	redisdb "github.com/peopledesk/identity-api/internal/infrastructure/db/redis"
	"github.com/peopledesk/identity-api/pkg/logger"
)

// route pairs a handler with its declared access requirement. The table is the
// single place where the API's access policy lives; the enforcer middleware is
// attached per route from it. Echo matches the most specific registered path
// first, so the open /api/users/batch rule cannot be shadowed by the
// admin-gated /api/users/:username rule.
type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	access  middleware.Requirement
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	log := logger.Get()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	profileCache := redisdb.NewProfileCache(rdb)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTLMinutes)
	authService := service.NewAuthService(userRepo, tokens, log)
	userService := service.NewUserService(userRepo, profileCache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	// Principal resolution runs on every request; it never rejects.
	e.Use(middleware.Authenticate(tokens, userRepo))

	routes := []route{
		{http.MethodPost, "/api/auth/login", authHandler.Login, middleware.Public},
		{http.MethodGet, "/api/users/generate", userHandler.Generate, middleware.Public},
		{http.MethodPost, "/api/users/batch", userHandler.BatchImport, middleware.Public},
		{http.MethodGet, "/api/users/me", userHandler.Me, middleware.Authenticated},
		{http.MethodGet, "/api/users/:username", userHandler.GetByUsername, middleware.Role(domain.RoleAdmin)},
		{http.MethodGet, "/health", healthHandler.Liveness, middleware.Public},
		{http.MethodGet, "/health/ready", healthDepsHandler.Readiness, middleware.Public},
	}
	for _, r := range routes {
		e.Add(r.method, r.path, r.handler, middleware.Enforce(r.access))
	}

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
