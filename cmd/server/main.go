// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/app"
	"github.com/festy23/street_sports/internal/auth"
	"github.com/festy23/street_sports/internal/config"
	"github.com/festy23/street_sports/internal/database/database"
	"github.com/festy23/street_sports/internal/database/migrate"
	"github.com/festy23/street_sports/internal/payment/processor"
	"github.com/festy23/street_sports/internal/realtime"
	"github.com/festy23/street_sports/pkg/logger"
	"github.com/festy23/street_sports/pkg/retry"
)

func main() {
	cfg := config.LoadFromEnv()

	log, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Errorw("server stopped", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.SugaredLogger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	hub := realtime.NewHub(cfg.Realtime.SendBuffer, log)
	var publisher realtime.Publisher = hub
	if cfg.Realtime.RelayEnabled() {
		relay, closeRelay, err := startRelay(ctx, cfg.Realtime, hub, log)
		if err != nil {
			return err
		}
		defer closeRelay()
		publisher = relay
	}

	var proc processor.Processor
	if cfg.Payment.Enabled() {
		stripeProc, err := processor.NewStripe(cfg.Payment, log)
		if err != nil {
			return fmt.Errorf("payment processor: %w", err)
		}
		proc = stripeProc
	} else {
		log.Warnw("STRIPE_SECRET_KEY not set, paid checkout disabled")
	}

	router := app.NewRouter(app.Options{
		DB:        db,
		Hub:       hub,
		Publisher: publisher,
		Tokens:    auth.NewManager(cfg.Auth),
		Processor: proc,
		Config:    cfg,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// startRelay connects to Redis and subscribes the relay to the hub.
func startRelay(
	ctx context.Context,
	cfg config.RealtimeConfig,
	hub *realtime.Hub,
	log *zap.SugaredLogger,
) (*realtime.RedisRelay, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	retryCfg := retry.RedisConfig()
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		log.Warnw("redis ping failed", "attempt", attempt, "retry_in", delay, "error", err)
	}
	if err := retry.Do(ctx, retryCfg, func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}

	relay := realtime.NewRedisRelay(client, hub, cfg.RedisChannel, log)
	if err := relay.Start(ctx); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return relay, func() { _ = client.Close() }, nil
}
