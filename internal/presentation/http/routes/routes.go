package routes

import (
	"time"

	"github.com/chopdesk/chopdesk-api/internal/config"
	domainRepo "github.com/chopdesk/chopdesk-api/internal/domain/repository"
	"github.com/chopdesk/chopdesk-api/internal/presentation/http/handler"
	"github.com/chopdesk/chopdesk-api/internal/presentation/http/middleware"
	"github.com/chopdesk/chopdesk-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Session  *handler.SessionHandler
	Ledger   *handler.LedgerHandler
	Movement *handler.MovementHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Log             *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RequireTenant())

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/profile", h.Auth.GetProfile)

	registerSessionRoutes(protected, h, deps)
	registerMovementRoutes(protected, h)
}

func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	sessions := protected.Group("/cash-sessions")
	{
		sessions.POST("", h.Session.Open)
		sessions.GET("", h.Session.List)
		sessions.GET("/:id", h.Session.Get)
		sessions.POST("/:id/close", h.Session.Close)
		sessions.GET("/:id/balance", h.Session.GetBalance)

		// Ledger appends require an Idempotency-Key so retries never double-book
		sessions.POST("/:id/revenues", idempotency, h.Ledger.RecordRevenue)
		sessions.GET("/:id/revenues", h.Ledger.ListRevenues)
		sessions.POST("/:id/expenses", idempotency, h.Ledger.RecordExpense)
		sessions.GET("/:id/expenses", h.Ledger.ListExpenses)
	}
}

func registerMovementRoutes(protected *gin.RouterGroup, h *Handlers) {
	movements := protected.Group("/stock-movements")
	{
		// Manual adjustments are for owners and managers only
		movements.POST("", middleware.RequireRole("owner", "manager"), h.Movement.Adjust)
		movements.GET("", h.Movement.List)
	}
}
