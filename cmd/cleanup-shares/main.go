// Command cleanup-shares deletes share tokens whose expiry has passed.
// Run it from cron; the server itself never sweeps. Tokens without an
// expiry are kept.
//
// Usage:
//
//	cleanup-shares [-grace 24h]
//
// -grace keeps tokens that expired less than the given duration ago, so
// recent links still answer 410 instead of 404.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookmarks-backend/internal/adapter/postgres/sharetoken"
	"github.com/heartmarshall/bookmarks-backend/internal/app"
	"github.com/heartmarshall/bookmarks-backend/internal/config"
)

func main() {
	grace := flag.Duration("grace", 0, "keep tokens that expired less than this long ago")
	timeout := flag.Duration("timeout", time.Minute, "overall deadline")
	flag.Parse()

	if *grace < 0 {
		log.Fatalf("-grace must not be negative")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log).With(slog.String("cmd", "cleanup-shares"))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg, *grace, logger); err != nil {
		logger.Error("cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, grace time.Duration, logger *slog.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	cutoff := time.Now().UTC().Add(-grace)
	deleted, err := sharetoken.New(pool).DeleteExpired(ctx, cutoff)
	if err != nil {
		return err
	}

	logger.Info("expired share tokens deleted",
		slog.Int("deleted", deleted),
		slog.Time("expired_before", cutoff),
	)
	return nil
}
