package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/vela-pay/vela_pay/internal/account"
	"github.com/vela-pay/vela_pay/internal/admin"
	"github.com/vela-pay/vela_pay/internal/auth"
	"github.com/vela-pay/vela_pay/internal/config"
	"github.com/vela-pay/vela_pay/internal/middleware"
	"github.com/vela-pay/vela_pay/internal/notification"
	"github.com/vela-pay/vela_pay/internal/storage"
	"github.com/vela-pay/vela_pay/internal/token"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Stores
	var repo account.Repository
	if d.DB != nil {
		repo = account.NewPostgresRepository(d.DB)
	} else {
		repo = account.NewMemoryRepository()
	}
	var adminRepo admin.Repository
	if d.DB != nil {
		adminRepo = admin.NewPostgresRepository(d.DB)
	} else {
		adminRepo = admin.NewMemoryRepository()
	}
	var denylist auth.Denylist
	if d.Cache != nil {
		denylist = auth.NewRedisDenylist(d.Cache)
	} else {
		denylist = auth.NewMemoryDenylist()
	}
	var sessions admin.SessionStore
	if d.Cache != nil {
		sessions = admin.NewRedisSessionStore(d.Cache)
	} else {
		sessions = admin.NewMemorySessionStore()
	}
	objects, err := storage.NewDiskStore(d.Cfg.StorageDir)
	if err != nil {
		return err
	}

	// Services and handlers
	issuer := token.NewJWTIssuer(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	notifier := notification.NewLoggerNotifier(d.Logger)
	accountSvc := account.NewService(repo, objects, issuer, notifier, d.Logger)
	authSvc := auth.NewService(repo, issuer, denylist, d.Logger)
	adminSvc := admin.NewService(adminRepo, sessions, d.Cfg.AdminSessionTTL, d.Logger)

	accountHandler := account.NewHandler(accountSvc)
	authHandler := auth.NewHandler(authSvc)
	adminHandler := admin.NewHandler(adminSvc, accountSvc, d.Cache)

	jwtmw := middleware.JWTAuth(issuer, denylist)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	var idem fiber.Handler
	if d.Cache != nil {
		idem = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}
	RegisterAccountRoutes(api, accountHandler, idem, jwtmw)

	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter, jwtmw)

	// Admin routes (cookie sessions, redirect based)
	RegisterAdminRoutes(app, adminHandler, middleware.AdminSession(adminSvc))

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
