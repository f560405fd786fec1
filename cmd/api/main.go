package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/api/dto"
	httptransport "github.com/spec-kit/storefront/internal/api/http"
	"github.com/spec-kit/storefront/internal/api/http/handlers"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/config"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/observability"
	"github.com/spec-kit/storefront/internal/persistence"
	"github.com/spec-kit/storefront/internal/repository"
	"github.com/spec-kit/storefront/internal/repository/memory"
	"github.com/spec-kit/storefront/internal/service"
	"github.com/spec-kit/storefront/internal/verification"
	"github.com/spec-kit/storefront/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.UsesInsecureSecret() {
		logger.Warn("AUTH_JWT_SECRET not set; signing tokens with the built-in development secret")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	store, err := openStore(ctx, cfg, pg, logger)
	if err != nil {
		logger.Fatal("failed to prepare storage", zap.Error(err))
	}

	var redis *persistence.Redis
	if cfg.Redis.Enabled {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
	}

	var codes verification.CodeStore = verification.NewMemoryStore()
	limiters := httptransport.NewLimiters(cfg.RateLimit, nil)
	if redis != nil {
		codes = verification.NewRedisStore(redis.Client, cfg.Verification.SweepInterval())
		limiters = httptransport.NewLimiters(cfg.RateLimit, persistence.NewLimiterStorage(redis.Client, "ratelimit:"))
	}

	dispatcher := events.NewInMemoryDispatcher()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	sessions := auth.NewSessionManager(store.Sessions, cfg.Auth.SessionTTL())
	verifier := verification.NewService(
		codes,
		verification.NewLogNotifier(logger, cfg.Notification.SMSSender, cfg.Verification.CodeTTL()),
		cfg.Verification.CodeTTL(),
		logger,
		verification.WithMetrics(metrics),
	)

	authService := service.NewAuthService(service.AuthDependencies{
		Users:      store.Users,
		Sessions:   sessions,
		Tokens:     tokens,
		BcryptCost: cfg.Auth.BcryptCost,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})
	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal("failed to bootstrap admin account", zap.Error(err))
	}

	orderService := service.NewOrderService(service.OrderDependencies{
		Orders:     store.Orders,
		Products:   store.Products,
		Verifier:   verifier,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	sweeper := worker.NewSweeper(logger, metrics,
		worker.SweepJob{Name: "sessions", Interval: cfg.Auth.SessionSweepInterval(), Target: sessions},
		worker.SweepJob{Name: "verification_codes", Interval: cfg.Verification.SweepInterval(), Target: verifier},
	)
	worker.Start(ctx, service.NewNotificationService(dispatcher, logger, cfg.Notification), sweeper)

	app := httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:       logger,
		Metrics:      metrics,
		Timeout:      cfg.App.RequestTimeout(),
		ExposeErrors: cfg.App.IsDevelopment(),
	})

	validate := dto.NewValidator()
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:          handlers.NewAuthHandler(authService, validate),
		Products:      handlers.NewProductsHandler(service.NewCatalogService(store.Products), validate),
		Orders:        handlers.NewOrdersHandler(orderService, validate),
		Contacts:      handlers.NewContactsHandler(service.NewContactService(store.Contacts, dispatcher, logger), validate),
		Newsletter:    handlers.NewNewsletterHandler(service.NewNewsletterService(store.Newsletter, dispatcher, logger), validate),
		Authenticator: auth.NewAuthenticator(tokens, sessions, store.Users, logger),
		Limiters:      limiters,
		Metrics:       metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	if err := app.Shutdown(); err != nil {
		logger.Warn("fiber shutdown", zap.Error(err))
	}
}

// openStore selects Postgres when a pool is open and the seeded in-memory
// store otherwise.
func openStore(ctx context.Context, cfg *config.Config, pg *persistence.Postgres, logger *zap.Logger) (*repository.Store, error) {
	if !pg.Enabled() {
		return memory.NewSeededStore(ctx)
	}
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
			return nil, err
		}
	}
	return repository.NewPostgresStore(pg.Pool), nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
