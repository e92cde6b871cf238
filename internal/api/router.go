package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ppk205/comicreader/internal/api/handler"
	"github.com/ppk205/comicreader/internal/api/middleware"
	"github.com/ppk205/comicreader/internal/core/domain"
	"github.com/ppk205/comicreader/internal/core/ports"
	"github.com/ppk205/comicreader/pkg/comicapi"
)

// Deps bundles everything the router needs. The backend client serves both
// the proxy routes and the readiness probe.
type Deps struct {
	Accounts   ports.AccountService
	Reading    handler.ReadingQueue
	History    handler.ReadingHistory
	Backend    *comicapi.Client
	Mongo      *mongo.Database
	Redis      *redis.Client
	JWTSecret  string
	SessionTTL time.Duration
	CacheTTL   time.Duration
	CacheOn    bool
	Secure     bool
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("comicreader"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Accounts, d.JWTSecret, d.SessionTTL, d.Secure)
	profileHandler := handler.NewProfileHandler(d.Accounts)
	readingHandler := handler.NewReadingHandler(d.Reading, d.History)
	catalogHandler := handler.NewCatalogHandler(d.Backend, d.Log)
	sessionRequired := middleware.Session(d.JWTSecret)
	cache := middleware.ResponseCache(middleware.CacheConfig{Enabled: d.CacheOn, TTL: d.CacheTTL}, d.Redis)

	// --- Session routes (cookie-based, independent of the bearer token) ---
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/logout", authHandler.Logout)
	e.POST("/api/register", authHandler.Register)
	e.GET("/api/profile", profileHandler.Get, sessionRequired)
	e.PUT("/api/profile", profileHandler.Update, sessionRequired)
	e.POST("/api/users/:id/follow", profileHandler.Follow, sessionRequired)
	e.DELETE("/api/users/:id/follow", profileHandler.Unfollow, sessionRequired)
	e.POST("/api/reading", readingHandler.Record, sessionRequired)
	e.GET("/api/reading", readingHandler.List, sessionRequired)

	// --- Proxied catalog routes ---
	e.GET("/api/manga", catalogHandler.MangaList, cache)
	e.GET("/api/manga/:id", catalogHandler.MangaByID, cache)
	e.GET("/api/posts", catalogHandler.Posts, cache)
	e.GET("/api/dashboard/stats", catalogHandler.DashboardStats, cache)

	// --- Moderation routes, restricted to elevated roles ---
	moderatorOnly := middleware.RequireRole(domain.RoleAdmin, domain.RoleModerator)
	e.GET("/api/moderation/reports", catalogHandler.ModerationReports, sessionRequired, moderatorOnly)
	e.GET("/api/moderation/queue", catalogHandler.ModerationQueue, sessionRequired, moderatorOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis, d.Backend)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
