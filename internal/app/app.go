package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/bookmarks-backend/internal/adapter/minio/snapshot"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/collection"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/group"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/item"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/ownership"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/sharetoken"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/redis/sharecache"
	"github.com/heartmarshall/bookmarks-backend/internal/auth"
	"github.com/heartmarshall/bookmarks-backend/internal/config"
	"github.com/heartmarshall/bookmarks-backend/internal/service/hierarchy"
	"github.com/heartmarshall/bookmarks-backend/internal/service/reorder"
	"github.com/heartmarshall/bookmarks-backend/internal/service/share"
	"github.com/heartmarshall/bookmarks-backend/internal/service/transfer"
	"github.com/heartmarshall/bookmarks-backend/internal/transport/middleware"
	"github.com/heartmarshall/bookmarks-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects the
// stores, wires the services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	txm := postgres.NewTxManager(pool)

	collections := collection.New(pool, txm)
	groups := group.New(pool, txm)
	items := item.New(pool, txm)
	owners := ownership.New(pool)
	tokens := sharetoken.New(pool)
	auditRepo := audit.New(pool)

	hierarchyService := hierarchy.NewService(logger, collections, groups, items, owners, auditRepo, txm, cfg.Reorder)
	reorderService := reorder.NewService(logger, hierarchyService, cfg.Reorder)
	transferService := transfer.NewService(logger, collections, groups, items, auditRepo, txm, cfg.Transfer)
	shareService := share.NewService(logger, tokens, owners, collections, groups, items, auditRepo, txm, cfg.Share)

	healthHandler := rest.NewHealthHandler(pool, BuildVersion())

	if cfg.Redis.Enabled() {
		client, err := sharecache.Open(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer client.Close()

		shareService.WithCache(sharecache.New(client, cfg.Share.CacheTTL))
		healthHandler.WithComponent("redis", rest.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}), true)
		logger.Info("share token cache enabled", slog.Duration("ttl", cfg.Share.CacheTTL))
	}

	if cfg.Transfer.SnapshotEnabled {
		store, err := snapshot.New(cfg.Storage)
		if err != nil {
			return err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return err
		}
		transferService.WithSnapshots(store)
		healthHandler.WithComponent("storage", store, true)
		logger.Info("import snapshots enabled", slog.String("bucket", cfg.Storage.Bucket))
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	limiter := middleware.NewRateLimiter(cleanupInterval(cfg.RateLimit))
	defer limiter.Stop()

	handler := rest.NewRouter(rest.Handlers{
		Health:    healthHandler,
		Hierarchy: rest.NewHierarchyHandler(hierarchyService, logger),
		Reorder:   rest.NewReorderHandler(reorderService, logger),
		Transfer:  rest.NewTransferHandler(transferService, cfg.Transfer.MaxDocumentBytes, logger),
		Share:     rest.NewShareHandler(shareService, logger),
	}, rest.RouterConfig{
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
		Validator: jwtManager,
		Limiter:   limiter,
	}, logger)

	return serve(ctx, cfg.Server, handler, logger)
}

// serve runs the HTTP server until ctx is cancelled or the listener fails,
// then drains in-flight requests within the shutdown timeout.
func serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func cleanupInterval(cfg config.RateLimitConfig) time.Duration {
	if cfg.Window > 0 {
		return cfg.Window
	}
	return time.Minute
}
