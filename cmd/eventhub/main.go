package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	zlog "github.com/rs/zerolog/log"

	"github.com/eventhub/platform/internal/application/category"
	"github.com/eventhub/platform/internal/application/comment"
	"github.com/eventhub/platform/internal/application/compilation"
	"github.com/eventhub/platform/internal/application/event"
	"github.com/eventhub/platform/internal/application/request"
	"github.com/eventhub/platform/internal/application/user"
	"github.com/eventhub/platform/internal/config"
	rediscache "github.com/eventhub/platform/internal/infrastructure/caching/redis"
	"github.com/eventhub/platform/internal/infrastructure/db/postgres"
	"github.com/eventhub/platform/internal/infrastructure/messaging/rabbitmq"
	statsclient "github.com/eventhub/platform/internal/infrastructure/stats"
	"github.com/eventhub/platform/internal/pkg/logger"
	"github.com/eventhub/platform/internal/transport/http/handlers"
	"github.com/eventhub/platform/internal/transport/http/middleware"
	"github.com/eventhub/platform/internal/transport/http/router"
)

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("LOG_LEVEL", cfg.LogLevel)
	_ = os.Setenv("LOG_FORMAT", cfg.LogFormat)
	logger.Init()
	log := zlog.With().Str("service", "eventhub").Str("env", cfg.AppEnv).Logger()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Postgres ----
	pool, err := pgxpool.New(rootCtx, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres pool create failed")
	}
	defer pool.Close()

	{
		pingCtx, cancel := context.WithTimeout(rootCtx, 5*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			log.Fatal().Err(err).Msg("postgres ping failed")
		}
		if err := postgres.EnsureSchema(pingCtx, pool); err != nil {
			log.Fatal().Err(err).Msg("schema setup failed")
		}
		log.Info().Msg("postgres connected")
	}

	eventRepo := postgres.NewEventRepo(pool)
	locationRepo := postgres.NewLocationRepo(pool)
	requestRepo := postgres.NewRequestRepo(pool)
	categoryRepo := postgres.NewCategoryRepo(pool)
	userRepo := postgres.NewUserRepo(pool)
	compilationRepo := postgres.NewCompilationRepo(pool)
	commentRepo := postgres.NewCommentRepo(pool)

	// ---- Redis (optional) ----
	var cache event.Cache
	var limiter middleware.IPLimiter
	if cfg.RedisURL != "" {
		rdb, err := rediscache.New(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable (continuing without cache)")
		} else {
			defer rdb.Close()
			cache = rdb
			limiter = rdb
			log.Info().Msg("redis connected")
		}
	}

	// ---- RabbitMQ (optional in dev) ----
	var pub event.Publisher = event.NoopPublisher{}
	if cfg.RabbitURL != "" {
		mq, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			if cfg.AppEnv != "dev" {
				log.Fatal().Err(err).Msg("rabbitmq connect failed")
			}
			log.Warn().Err(err).Msg("rabbitmq unavailable (continuing without publisher)")
		} else {
			defer mq.Close()
			pub = mq
			log.Info().Msg("rabbitmq connected")
		}
	}

	// ---- Stat client ----
	stc := statsclient.New(cfg.StatsURL, cfg.AppName)

	clock := realClock{}

	eventSvc := event.New(eventRepo, locationRepo, requestRepo, categoryRepo,
		userRepo, stc, pub, cache, clock, cfg.CacheEventTTL)
	requestSvc := request.New(requestRepo, eventRepo, userRepo, pub)
	categorySvc := category.New(categoryRepo, eventRepo)
	userSvc := user.New(userRepo)
	compilationSvc := compilation.New(compilationRepo, eventRepo, requestRepo)
	commentSvc := comment.New(commentRepo, eventRepo, userRepo, requestRepo, clock)

	h := router.New(
		handlers.NewEventsHandler(eventSvc, userSvc, categorySvc),
		handlers.NewRequestsHandler(requestSvc),
		handlers.NewCategoriesHandler(categorySvc),
		handlers.NewUsersHandler(userSvc),
		handlers.NewCompilationsHandler(compilationSvc, userSvc, categorySvc),
		handlers.NewCommentsHandler(commentSvc),
		handlers.NewHealthHandler(pool),
		limiter,
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("http server crashed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info().Msg("shutdown complete")
}
