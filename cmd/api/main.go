package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/spec-kit/partner-desk/internal/api/http"
	"github.com/spec-kit/partner-desk/internal/api/http/handlers"
	"github.com/spec-kit/partner-desk/internal/auth"
	"github.com/spec-kit/partner-desk/internal/config"
	"github.com/spec-kit/partner-desk/internal/events"
	"github.com/spec-kit/partner-desk/internal/fixtures"
	"github.com/spec-kit/partner-desk/internal/observability"
	"github.com/spec-kit/partner-desk/internal/persistence"
	"github.com/spec-kit/partner-desk/internal/repository"
	"github.com/spec-kit/partner-desk/internal/service"
	"github.com/spec-kit/partner-desk/internal/store"
	"github.com/spec-kit/partner-desk/internal/worker"
)

const shutdownTimeout = 10 * time.Second

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

	if err := run(cfg, logger); err != nil {
		logger.Fatal("partner-desk stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			return err
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher(logger)
	st := store.New(store.WithDispatcher(dispatcher))

	if cfg.Seed.File != "" {
		snap, err := fixtures.Load(cfg.Seed.File, time.Now())
		if err != nil {
			return err
		}
		st.Seed(snap)
		logger.Info("seeded store from fixture",
			zap.String("file", cfg.Seed.File),
			zap.Int("partners", len(snap.Partners)))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewMemoryUserRepository()
	syncDeps := service.SyncDependencies{
		Store:      st,
		Dispatcher: dispatcher,
		Channel:    cfg.Sync.Channel,
		Source:     cfg.Sync.SourceID,
		Logger:     logger,
		Metrics:    metrics,
	}
	if pool != nil {
		userRepo = repository.NewUserRepository(pool)
		syncDeps.PartnerRepo = repository.NewPartnerRepository(pool)
		syncDeps.HistoryRepo = repository.NewHealthHistoryRepository(pool)
	}
	realtime := cfg.Sync.Enabled && redis.Enabled()
	if realtime {
		syncDeps.Publisher = redis
	}

	syncService := service.NewPartnerSyncService(syncDeps)
	syncService.RegisterHandlers()
	if err := syncService.Bootstrap(ctx); err != nil {
		logger.Warn("partner bootstrap failed; continuing with in-memory partners", zap.Error(err))
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(cfg.Auth, userRepo, tokens)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	routes := httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:        handlers.NewUsersHandler(authService),
		Partners:     handlers.NewPartnersHandler(st, nil),
		Interactions: handlers.NewInteractionsHandler(st, nil),
		Threads:      handlers.NewThreadsHandler(st),
		Dashboard:    handlers.NewDashboardHandler(st, nil),
		Metrics:      metrics.Handler(),
		WriteLimiter: httptransport.WriteRateLimiter(cfg.RateLimit.WritesPerSecond, cfg.RateLimit.Burst),
	}
	if cfg.Auth.Enabled {
		routes.AuthMiddleware = auth.NewAuthMiddleware(tokens, userRepo)
	} else {
		logger.Warn("AUTH_ENABLED=false; /api is unauthenticated")
	}
	httptransport.RegisterRoutes(app, routes)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		return app.Listen(cfg.App.Addr())
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if realtime {
		sub, err := redis.Subscribe(ctx, cfg.Sync.Channel)
		if err != nil {
			logger.Warn("partner sync subscription failed; realtime updates disabled", zap.Error(err))
		} else {
			defer sub.Close()
			syncWorker := worker.NewPartnerSyncWorker(sub.Channel(), syncService.HandleRemoteMessage, logger)
			group.Go(func() error {
				return syncWorker.Run(groupCtx)
			})
		}
	}

	group.Go(func() error {
		return waitForShutdown(groupCtx, logger)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, errShutdown) {
		return err
	}
	return nil
}

var errShutdown = errors.New("shutdown requested")

func waitForShutdown(ctx context.Context, logger *zap.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		return errShutdown
	case <-ctx.Done():
		return nil
	}
}
