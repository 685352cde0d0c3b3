// cmd/triage-server/main.go
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

	"pediatric-triage/internal/catalog"
	"pediatric-triage/internal/classifier"
	"pediatric-triage/internal/common/cache"
	"pediatric-triage/internal/common/config"
	"pediatric-triage/internal/common/logger"
	"pediatric-triage/internal/common/observability"
	"pediatric-triage/internal/llm"
	"pediatric-triage/internal/redflags"
	"pediatric-triage/internal/transport/rest"
	"pediatric-triage/internal/triage"
)

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

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting triage server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("modelProvider", cfg.Model.Provider),
		zap.String("model", cfg.Model.Name),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	model, err := llm.NewFromConfig(cfg.Model, log)
	if err != nil {
		zapLog.Fatal("model setup failed", zap.Error(err))
	}

	opts := []classifier.Option{classifier.WithTimeout(config.GetDuration(cfg.Model.Timeout))}

	// --- Classification cache (optional) ---
	if cfg.Cache.Enabled {
		rc := cache.NewRedis(cfg.Cache)
		err = retryWithBackoff(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			return rc.Ping(ctx)
		}, 5, time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("classification cache disabled", zap.Error(err))
			_ = rc.Close()
		} else {
			defer rc.Close()
			opts = append(opts, classifier.WithCache(rc, cfg.Cache.TTLDuration()))
			zapLog.Info("Redis connected successfully", zap.String("address", cfg.Cache.Address))
		}
	}

	cat := catalog.Default()
	svc := triage.NewService(cat, redflags.NewEngine(), classifier.New(model, log, opts...), obs, log)

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: rest.NewRouter(&rest.Container{
			Catalog:        cat,
			Triage:         svc,
			Logger:         log,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			MetricsPath:    metricsPath,
		}),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Triage server stopped gracefully")
}
