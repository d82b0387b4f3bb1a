// Package main runs the mail queue consumer on its own, for deployments that
// set MAIL_WORKER_EMBEDDED=false on the API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"depositor/internal/config"
	"depositor/internal/logger"
	"depositor/internal/mail"
	"depositor/internal/metrics"
	"depositor/internal/queue"
	"depositor/internal/repositories/cache"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logger.Must(cfg.Env).Named("mailworker")
	defer log.Sync() //nolint:errcheck

	redisClient := cache.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err := redisClient.Ping(pingCtx).Err()
	cancel()
	if err != nil {
		log.Fatal("redis unavailable", zap.Error(err))
	}

	transport, err := mail.NewTransport(cfg.Mail, log)
	if err != nil {
		log.Fatal("failed to build mail transport", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewPrometheusCollector(registry)

	metricsAddr := config.GetEnv("MAIL_WORKER_METRICS_ADDR", ":9101")
	srv := &http.Server{
		Addr:              metricsAddr,
		Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics listener stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := queue.NewWorker(queue.NewRedisQueue(redisClient, cfg.Mail.QueueKey), transport, queue.WorkerConfig{
		Concurrency: cfg.Mail.Workers,
		MaxAttempts: cfg.Mail.MaxAttempts,
		Backoff:     cfg.Mail.RetryBackoff,
	}, log, collector)

	worker.Run(ctx)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics listener shutdown failed", zap.Error(err))
	}
}
