// Package routes defines the API routing configuration.
// It builds the repositories and services and mounts every HTTP route.
package routes

import (
	"context"
	"time"

	"depositor/internal/config"
	"depositor/internal/handlers"
	"depositor/internal/metrics"
	"depositor/internal/middleware"
	"depositor/internal/queue"
	"depositor/internal/repositories"
	"depositor/internal/repositories/cache"
	"depositor/internal/services/auth"
	"depositor/internal/services/deposit"
	"depositor/internal/services/notification"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const Version = "1.0.0"

// Dependencies are the long-lived resources created by main.
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Cache    *cache.CacheService
	MailQ    queue.Queue
	Logger   *zap.Logger
	Metrics  metrics.Collector
	Gatherer prometheus.Gatherer
}

// SetupRoutes configures all application routes.
// Everything under /api except /api/login requires a bearer token.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// A nil *CacheService must not reach the interfaces below.
	var userCache repositories.UserCache
	var unread notification.UnreadCache
	if deps.Cache != nil {
		userCache = deps.Cache
		unread = deps.Cache
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(deps.DB, userCache, log)
	depositRepo := repositories.NewDepositRepository(deps.DB)
	notificationRepo := repositories.NewNotificationRepository(deps.DB)

	// Initialize services
	authService := auth.NewService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)

	notifier := notification.NewService(
		notificationRepo,
		deps.MailQ,
		unread,
		notification.Config{AppName: cfg.AppName, AppURL: cfg.AppURL},
		log,
		deps.Metrics,
	)

	maxAmount, err := decimal.NewFromString(cfg.DepositMaxAmount)
	if err != nil {
		log.Warn("invalid DEPOSIT_MAX_AMOUNT, using default",
			zap.String("value", cfg.DepositMaxAmount),
			zap.String("default", deposit.DefaultMaxAmount.String()),
		)
		maxAmount = deposit.DefaultMaxAmount
	}
	depositService := deposit.NewService(
		depositRepo,
		notifier,
		deposit.Config{WriteTimeout: cfg.DepositWriteTimeout, MaxAmount: maxAmount},
		log,
		deps.Metrics,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	depositHandler := handlers.NewDepositHandler(depositService, log)
	notificationHandler := handlers.NewNotificationHandler(notifier, log)
	healthHandler := handlers.NewHealthHandler(Version, healthChecks(deps), cacheStats(deps))
	authMiddleware := middleware.NewAuthMiddleware(authService, log)

	// Public routes
	app.Get("/health", healthHandler.HealthCheck)
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Post("/login", loginLimiter(), authHandler.Login)

	// Authenticated routes
	authenticated := api.Group("/", authMiddleware.Handler)
	authenticated.Get("/me", authHandler.Me)

	authenticated.Post("/deposits", depositHandler.Deposit)
	authenticated.Get("/deposits", depositHandler.List)

	authenticated.Get("/notifications", notificationHandler.List)
	authenticated.Post("/notifications/read", notificationHandler.MarkAsRead)

	authenticated.Get("/cache/stats", healthHandler.CacheStats)
}

func healthChecks(deps Dependencies) map[string]handlers.CheckFunc {
	checks := map[string]handlers.CheckFunc{}
	if deps.DB != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if deps.Cache != nil {
		checks["redis"] = deps.Cache.HealthCheck
	}
	return checks
}

func cacheStats(deps Dependencies) func() *redis.PoolStats {
	if deps.Cache == nil {
		return nil
	}
	return deps.Cache.GetStats
}

func loginLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
}
