package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"

	"github.com/eventhub/platform/internal/config"
	"github.com/eventhub/platform/internal/pkg/logger"
	"github.com/eventhub/platform/internal/stats"
)

func main() {
	cfg, err := config.LoadStat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("LOG_LEVEL", cfg.LogLevel)
	_ = os.Setenv("LOG_FORMAT", cfg.LogFormat)
	logger.Init()
	log := zlog.With().Str("service", "statsvc").Logger()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres open failed")
	}
	defer db.Close()
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(time.Minute)

	{
		pingCtx, cancel := context.WithTimeout(rootCtx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			log.Fatal().Err(err).Msg("postgres ping failed")
		}
	}

	repo := stats.NewRepository(db)
	{
		schemaCtx, cancel := context.WithTimeout(rootCtx, 5*time.Second)
		defer cancel()
		if err := repo.EnsureSchema(schemaCtx); err != nil {
			log.Fatal().Err(err).Msg("schema setup failed")
		}
	}
	log.Info().Msg("postgres connected")

	svc := stats.NewService(repo)
	h := stats.NewRouter(stats.NewHandler(svc), cfg.RLEnabled, cfg.RLLimit, cfg.RLWindow)

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
