package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/contact-funnel/internal/api/http"
	"github.com/spec-kit/contact-funnel/internal/api/http/handlers"
	"github.com/spec-kit/contact-funnel/internal/auth"
	"github.com/spec-kit/contact-funnel/internal/config"
	"github.com/spec-kit/contact-funnel/internal/events"
	"github.com/spec-kit/contact-funnel/internal/mail"
	"github.com/spec-kit/contact-funnel/internal/observability"
	"github.com/spec-kit/contact-funnel/internal/persistence"
	"github.com/spec-kit/contact-funnel/internal/repository"
	"github.com/spec-kit/contact-funnel/internal/service"
	"github.com/spec-kit/contact-funnel/internal/worker"
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
		if err := pg.Migrate(ctx, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	mailPool := worker.NewPool(64, 2, logger)
	mailPool.Start(ctx)
	defer mailPool.Stop()

	sender := mail.NewSMTPSender(cfg.Mail)
	notifications := service.NewNotificationService(dispatcher, sender, mailPool, logger, cfg.Mail)
	notifications.RegisterHandlers()

	var counter service.AttemptCounter
	if redis.Client != nil {
		counter = redis
	}
	limiter := service.NewRateLimiter(counter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow(), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Limiter:    limiter,
	})
	userService := service.NewUserService(*cfg, userRepo)
	submissionService := service.NewSubmissionService(submissionRepo, dispatcher)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.HTTP.BodyLimitBytes,
	})
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, cfg, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Env, pg),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Forms:          handlers.NewFormsHandler(submissionService),
		AuthMiddleware: authMiddleware,
		DB:             pg,
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
