package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"

	"github.com/resilientme/backend/internal/adapter/objectstore"
	"github.com/resilientme/backend/internal/adapter/postgres"
	"github.com/resilientme/backend/internal/adapter/push"
	"github.com/resilientme/backend/internal/auth"
	"github.com/resilientme/backend/internal/config"
	"github.com/resilientme/backend/internal/service/account"
	"github.com/resilientme/backend/internal/service/aggregate"
	"github.com/resilientme/backend/internal/service/challenge"
	"github.com/resilientme/backend/internal/service/community"
	"github.com/resilientme/backend/internal/service/entry"
	"github.com/resilientme/backend/internal/service/export"
	"github.com/resilientme/backend/internal/service/notify"
	"github.com/resilientme/backend/internal/service/ratelimit"
	"github.com/resilientme/backend/internal/transport/rest"
	"github.com/resilientme/backend/migrations"

	pgaggregate "github.com/resilientme/backend/internal/adapter/postgres/aggregate"
	pgchallenge "github.com/resilientme/backend/internal/adapter/postgres/challenge"
	pgevent "github.com/resilientme/backend/internal/adapter/postgres/event"
	pginsight "github.com/resilientme/backend/internal/adapter/postgres/insight"
	pgnotification "github.com/resilientme/backend/internal/adapter/postgres/notification"
	pgpost "github.com/resilientme/backend/internal/adapter/postgres/post"
	pgratelimit "github.com/resilientme/backend/internal/adapter/postgres/ratelimit"
	pgtoken "github.com/resilientme/backend/internal/adapter/postgres/token"
	pguser "github.com/resilientme/backend/internal/adapter/postgres/user"
)

// accessTokenTTL is only used when minting tokens locally (dev tooling);
// verification accepts whatever expiry the issuer signed.
const accessTokenTTL = 15 * time.Minute

// Run is the application entry point. It loads configuration, connects to
// the database, wires services, and runs the HTTP server plus the
// background workers until ctx is cancelled.
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

	if cfg.Database.Migrate {
		if err := migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("app: migrate: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("app: connect database: %w", err)
	}
	defer pool.Close()

	// Repositories.
	txm := postgres.NewTxManager(pool, cfg.Database.TxRetries)
	eventRepo := pgevent.New(pool)
	bucketRepo := pgaggregate.New(pool)
	insightRepo := pginsight.New(pool)
	taskRepo := pgnotification.New(pool)
	postRepo := pgpost.New(pool)
	rateRepo := pgratelimit.New(pool)
	tokenRepo := pgtoken.New(pool)
	userRepo := pguser.New(pool)
	challengeRepo := pgchallenge.New(pool)

	// Adapters.
	store, err := objectstore.NewFilesystem(cfg.Export.Dir)
	if err != nil {
		return fmt.Errorf("app: export store: %w", err)
	}
	signer := objectstore.NewURLSigner(cfg.Auth.JWTSecret, cfg.Export.PublicURL, cfg.Export.URLTTL)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, accessTokenTTL)

	var sender push.Sender
	if cfg.Push.AuthToken != "" {
		sender = push.NewFCM(cfg.Push.Endpoint, cfg.Push.AuthToken, cfg.Push.Timeout, logger)
	} else {
		logger.Warn("push auth token not set, using stub sender")
		sender = push.NewStub(logger)
	}

	// Services.
	limiter := ratelimit.NewService(logger, rateRepo, txm, func(actionKey string) ratelimit.Policy {
		p := cfg.RateLimit.Policy(actionKey)
		return ratelimit.Policy{Limit: p.Limit, Window: p.Window}
	})

	notifySvc := notify.NewService(logger, taskRepo, tokenRepo, sender, notify.Config{
		TickInterval:  cfg.Notify.TickInterval,
		BatchSize:     cfg.Notify.BatchSize,
		FollowUpDelay: cfg.Notify.FollowUpDelay,
		ClaimLease:    cfg.Notify.ClaimLease,
		Concurrency:   cfg.Notify.Concurrency,
	})

	aggregateSvc := aggregate.NewService(logger, eventRepo, bucketRepo, insightRepo, notifySvc, txm)
	entrySvc := entry.NewService(logger, eventRepo, userRepo, aggregateSvc, limiter)
	communitySvc := community.NewService(logger, postRepo, userRepo, limiter, txm)
	exportSvc := export.NewService(logger, eventRepo, challengeRepo, insightRepo, store, signer, limiter)
	challengeSvc := challenge.NewService(logger, challengeRepo, userRepo)
	accountSvc := account.NewService(logger,
		eventRepo, bucketRepo, insightRepo, taskRepo, rateRepo,
		postRepo, challengeRepo, tokenRepo, userRepo, exportSvc, txm)

	router := rest.NewRouter(rest.RouterDeps{
		Log:        logger,
		CORS:       cfg.CORS,
		Validator:  jwtManager,
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Entries:    rest.NewEntryHandler(entrySvc),
		Posts:      rest.NewPostHandler(communitySvc),
		Exports:    rest.NewExportHandler(exportSvc),
		Account:    rest.NewAccountHandler(accountSvc),
		Stats:      rest.NewStatsHandler(aggregateSvc),
		Challenges: rest.NewChallengeHandler(challengeSvc),
		Admin:      rest.NewAdminHandler(communitySvc),
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return notifySvc.Run(gctx)
	})

	g.Go(func() error {
		return challengeSvc.Run(gctx, cfg.Challenge.Hour)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// migrate applies the embedded goose migrations. goose needs database/sql,
// so a short-lived stdlib connection is opened next to the pgx pool.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
