// Command cleanup runs one retention sweep: expired rate-limit windows,
// aged reaction markers, and terminal notification tasks past their
// retention period. It is intended to be invoked by an external cron job,
// not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/resilientme/backend/internal/adapter/postgres"
	"github.com/resilientme/backend/internal/adapter/postgres/notification"
	"github.com/resilientme/backend/internal/adapter/postgres/post"
	"github.com/resilientme/backend/internal/adapter/postgres/ratelimit"
	"github.com/resilientme/backend/internal/app"
	"github.com/resilientme/backend/internal/config"
	"github.com/resilientme/backend/internal/service/retention"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := retention.NewService(logger,
		ratelimit.New(pool),
		post.New(pool),
		notification.New(pool),
		retention.Config{
			MaxAge:     cfg.Retention.MaxAge,
			TaskMaxAge: cfg.Retention.TaskMaxAge,
		},
	)

	result, err := svc.Sweep(ctx)
	if err != nil {
		logger.Error("retention sweep failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("retention sweep completed",
		slog.Int("rate_limit_buckets", result.RateLimitBuckets),
		slog.Int("reaction_markers", result.ReactionMarkers),
		slog.Int("tasks", result.Tasks),
	)
}
