package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/tenantworks/saas-admin/docs"
	"github.com/tenantworks/saas-admin/internal/api/handler"
	"github.com/tenantworks/saas-admin/internal/api/middleware"
	"github.com/tenantworks/saas-admin/internal/core/ports"
	"github.com/tenantworks/saas-admin/internal/core/service"
	mongodb "github.com/tenantworks/saas-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/tenantworks/saas-admin/internal/infrastructure/db/redis"
	"github.com/tenantworks/saas-admin/internal/ratelimit"
	"github.com/tenantworks/saas-admin/internal/token"
)

// Rate-limit tiers. See the middleware package for key derivation.
const (
	globalWindow = 15 * time.Minute
	globalMax    = 100
	authWindow   = 15 * time.Minute
	authMax      = 5
	tenantWindow = time.Minute
	tenantMax    = 50
)

// Deps carries everything the router needs to assemble the service.
type Deps struct {
	DB        *mongo.Database
	Redis     *redisclient.Client // optional: nil falls back to in-process rate limiting
	JWTSecret string
	TokenTTL  time.Duration
	Audit     ports.AuditRecorder
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The per-request pipeline is strictly rate limit → authenticate → authorize →
// handle; a rejection at any stage stops the pipeline there.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("saasadmin"))

	// --- Rate limiters ---
	// Redis shares buckets across replicas; without it each process counts
	// its own.
	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if deps.Redis != nil {
		store = redisdb.NewRateLimitStore(deps.Redis)
	}
	globalLimit := middleware.RateLimit(
		ratelimit.New("global", store, globalMax, globalWindow),
		middleware.KeyByIP,
		"Too many requests from this IP, please try again later.",
		deps.Log,
	)
	authLimit := middleware.RateLimitFailures(
		ratelimit.New("auth", store, authMax, authWindow),
		middleware.KeyByIP,
		"Too many login attempts, please try again after 15 minutes.",
		deps.Log,
	)
	tenantLimit := middleware.RateLimit(
		ratelimit.New("tenant", store, tenantMax, tenantWindow),
		middleware.KeyByTenant,
		"API rate limit exceeded for your tenant.",
		deps.Log,
	)

	// --- Dependencies ---
	issuer := token.NewIssuer(deps.JWTSecret, deps.TokenTTL)
	authMW := middleware.Auth(issuer)

	tenantRepo := mongodb.NewTenantRepository(deps.DB)
	userRepo := mongodb.NewUserRepository(deps.DB)
	projectRepo := mongodb.NewProjectRepository(deps.DB)
	taskRepo := mongodb.NewTaskRepository(deps.DB)

	authHandler := handler.NewAuthHandler(service.NewAuthService(tenantRepo, userRepo, issuer, deps.Audit))
	tenantHandler := handler.NewTenantHandler(service.NewTenantService(tenantRepo, deps.Audit))
	userHandler := handler.NewUserHandler(service.NewUserService(userRepo, deps.Audit))
	projectHandler := handler.NewProjectHandler(service.NewProjectService(projectRepo, deps.Audit))
	taskHandler := handler.NewTaskHandler(service.NewTaskService(taskRepo, projectRepo))
	statsHandler := handler.NewStatsHandler(service.NewStatsService(tenantRepo, userRepo, projectRepo, taskRepo))

	// --- Health probes (no auth, no throttling: probe traffic) ---
	e.GET("/api/health", handler.NewHealthHandler().Liveness)
	e.GET("/api/health/ready", handler.NewReadinessHandler(deps.DB, deps.Redis).Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API surface ---
	api := e.Group("/api", globalLimit)

	auth := api.Group("/auth")
	auth.POST("/register-tenant", authHandler.RegisterTenant, authLimit)
	auth.POST("/login", authHandler.Login, authLimit)
	auth.POST("/logout", authHandler.Logout, authMW, tenantLimit)
	auth.GET("/me", authHandler.Me, authMW, tenantLimit)

	// Everything below requires a verified credential; the tenant tier keys
	// off the identity the auth gate just attached.
	protected := api.Group("", authMW, tenantLimit)

	tenants := protected.Group("/tenants")
	tenants.GET("", tenantHandler.List, middleware.RequireSuperAdmin())
	tenants.GET("/:id", tenantHandler.Get)
	tenants.PUT("/:id", tenantHandler.Update, middleware.RequireSuperAdmin())
	tenants.DELETE("/:id", tenantHandler.Delete, middleware.RequireSuperAdmin())
	tenants.POST("/:id/users", userHandler.Create, middleware.RequireTenantAdmin())
	tenants.GET("/:id/users", userHandler.List, middleware.RequireTenantAdmin())

	users := protected.Group("/users")
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, middleware.RequireTenantAdmin())

	projects := protected.Group("/projects")
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.DELETE("/:id", projectHandler.Delete)
	projects.POST("/:id/tasks", taskHandler.Create)
	projects.GET("/:id/tasks", taskHandler.List)

	protected.GET("/stats", statsHandler.Get, middleware.RequireSuperAdmin())

	return e
}
