// Package main is the entry point for the HTTP API.
// It loads configuration, connects PostgreSQL and Redis, wires the routes
// and serves until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"depositor/internal/config"
	"depositor/internal/logger"
	"depositor/internal/mail"
	"depositor/internal/metrics"
	"depositor/internal/queue"
	"depositor/internal/repositories"
	"depositor/internal/repositories/cache"
	"depositor/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logger.Must(cfg.Env)
	defer log.Sync() //nolint:errcheck

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := repositories.CloseDB(db); err != nil {
			log.Warn("failed to close database connection", zap.Error(err))
		}
	}()
	if err := repositories.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	log.Info("connected to database with connection pooling")

	redisClient := cache.NewRedisClient(cfg.Redis)
	cacheService := cache.NewCacheService(redisClient, repositories.DefaultExpiration)
	defer func() {
		if err := cacheService.Close(); err != nil {
			log.Warn("failed to close redis connection", zap.Error(err))
		}
	}()
	if err := cacheService.HealthCheck(context.Background()); err != nil {
		log.Fatal("redis unavailable", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewPrometheusCollector(registry)

	mailQueue := queue.NewRedisQueue(redisClient, cfg.Mail.QueueKey)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var workers sync.WaitGroup
	if cfg.Mail.Embedded {
		transport, err := mail.NewTransport(cfg.Mail, log)
		if err != nil {
			log.Fatal("failed to build mail transport", zap.Error(err))
		}
		worker := queue.NewWorker(mailQueue, transport, queue.WorkerConfig{
			Concurrency: cfg.Mail.Workers,
			MaxAttempts: cfg.Mail.MaxAttempts,
			Backoff:     cfg.Mail.RetryBackoff,
		}, log.Named("mailworker"), collector)

		workers.Add(1)
		go func() {
			defer workers.Done()
			worker.Run(ctx)
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    64 * 1024,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,OPTIONS",
		AllowCredentials: true,
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		Config:   cfg,
		DB:       db,
		Cache:    cacheService,
		MailQ:    mailQueue,
		Logger:   log,
		Metrics:  collector,
		Gatherer: registry,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", zap.Error(err))
	}

	stop()
	workers.Wait()
}
