package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nikise23/optica-mia/internal/config"
	"github.com/Nikise23/optica-mia/internal/infra"
	"github.com/Nikise23/optica-mia/internal/router"
	"github.com/Nikise23/optica-mia/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional: without it the report cache is a no-op and the
	// cierre de caja email never fires.
	var rdb *redis.Client
	var dispatcher *worker.Dispatcher
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		mailer := infra.NewMailer(cfg)
		dispatcher = worker.NewDispatcher(rdb)
		worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.NewEmailWorker(mailer))
	} else {
		log.Warn().Msg("REDIS_URL empty — report cache and close-report emails disabled")
	}

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("optica-mia backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
