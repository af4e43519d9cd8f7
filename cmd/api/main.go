package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/church-service/internal/api/http"
	"github.com/spec-kit/church-service/internal/api/http/handlers"
	"github.com/spec-kit/church-service/internal/auth"
	"github.com/spec-kit/church-service/internal/config"
	"github.com/spec-kit/church-service/internal/events"
	"github.com/spec-kit/church-service/internal/observability"
	"github.com/spec-kit/church-service/internal/persistence"
	"github.com/spec-kit/church-service/internal/repository"
	"github.com/spec-kit/church-service/internal/service"
	"github.com/spec-kit/church-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	refreshRepo := repository.NewRefreshTokenRepository(pool, cfg.Auth.RefreshTokenTTLDays)
	permRepo := repository.NewPermissionRepository(pool)
	memberRepo := repository.NewMemberRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	resolver := auth.NewPermissionResolver(permRepo)
	if err := resolver.Reload(ctx); err != nil {
		logger.Fatal("failed to load role permissions", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(dispatcher, auditRepo, logger)
	worker.StartAuditWorker(auditService)

	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	throttle := service.NewLoginThrottle(redis.Client, cfg.Auth.LoginMaxFailures, cfg.Auth.LoginLockoutMinutes, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo:      accountRepo,
		RefreshTokenRepo: refreshRepo,
		Codec:            codec,
		Permissions:      resolver,
		Throttle:         throttle,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	memberService := service.NewMemberService(memberRepo)
	authMiddleware := auth.NewMiddleware(codec, resolver)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, metrics),
		Members:        handlers.NewMembersHandler(memberService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
		LoginRPS:       cfg.Auth.LoginRatePerSecond,
		LoginBurst:     cfg.Auth.LoginRateBurst,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
