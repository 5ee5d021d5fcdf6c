// cmd/backoffice-console/main.go
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

	"go.uber.org/zap"

	"backoffice-console/internal/common/config"
	"backoffice-console/internal/common/database"
	commonhttp "backoffice-console/internal/common/http"
	"backoffice-console/internal/common/logger"
	"backoffice-console/internal/common/metrics"
	"backoffice-console/internal/common/observability"
	"backoffice-console/internal/console"
	"backoffice-console/internal/session"
)

const sweepInterval = time.Minute

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service":     cfg.App.Name,
		"environment": cfg.App.Environment,
	})

	zapLog.Info("Starting back office console", zap.String("api", cfg.API.BaseURL))

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var backend session.Backend
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Fatal("redis client setup failed", zap.Error(err))
		}
		err = retryWithBackoff(func() error {
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			_ = rdb.Close()
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		zapLog.Info("Redis connected successfully")
		backend = session.NewRedisBackend(rdb.Cmdable(), cfg.Session.KeyPrefix, config.GetDuration(cfg.Session.TTL))
	case config.SessionBackendMemory:
		backend = session.NewMemoryBackend()
	default:
		if err := os.MkdirAll(cfg.Session.FilePath, 0o700); err != nil {
			zapLog.Fatal("session directory unavailable", zap.Error(err))
		}
		backend = session.NewFileBackend(cfg.Session.FilePath)
	}
	zapLog.Info("Session backend ready", zap.String("backend", cfg.Session.Backend))

	httpClient := commonhttp.NewClient(config.GetDuration(cfg.API.Timeout), metrics.RequestObserver{}, obs)
	registry := console.NewRegistry(console.RegistryOptions{
		Backend:  backend,
		API:      cfg.API,
		HTTP:     httpClient,
		CacheTTL: config.GetDuration(cfg.Cache.TTL),
		Logins:   obs,
		Log:      log,
	})
	go registry.Run(ctx, sweepInterval, config.GetDuration(cfg.Session.IdleTimeout))

	srv := console.NewServer(&console.ServerDependencies{Config: cfg, Registry: registry, Log: log})
	go func() {
		zapLog.Info("Console listening", zap.String("address", cfg.Server.Address()))
		if err := srv.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("console server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping console...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping console server", zap.Error(err))
	}
	zapLog.Info("Back office console stopped")
}
