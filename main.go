package main

import (
	"conference-api/cache"
	"conference-api/config"
	"conference-api/database"
	"conference-api/handlers"
	"conference-api/jobs"
	"conference-api/mailer"
	"conference-api/router"
	"conference-api/service"
	"conference-api/tasks"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.App.LogLevel)
	logger.Info("starting conference api", "environment", cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Storage
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	store, err := database.Connect(connectCtx, cfg.Database)
	if err != nil {
		return err
	}
	defer store.Disconnect(context.Background())
	if err := store.EnsureIndexes(connectCtx); err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(connectCtx).Err(); err != nil {
		return fmt.Errorf("redis is not available: %w", err)
	}

	// 2. Services
	announcements := cache.New(rdb, store, logger)
	queue := tasks.NewQueue(rdb)
	svc := service.New(store, announcements, queue, logger)

	worker := tasks.NewWorker(queue, cfg.Jobs.TaskPollTimeout, logger)
	svc.RegisterTaskHandlers(worker, mailer.NewLogSender(logger))
	workerDone := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(workerDone)
	}()

	scheduler := jobs.NewScheduler(announcements, logger)
	if err := scheduler.Start(cfg.Jobs.AnnouncementSchedule); err != nil {
		return fmt.Errorf("invalid announcement schedule: %w", err)
	}
	defer scheduler.Stop()

	// 3. HTTP
	app := fiber.New(fiber.Config{DisableStartupMessage: cfg.App.Environment == "production"})
	signingKey := []byte(cfg.Auth.SigningKey)
	router.SetupRoutes(app, handlers.New(svc, signingKey, cfg.Auth.TokenTTL, logger), signingKey)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down gracefully")
		if err := app.Shutdown(); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "port", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("http server error: %w", err)
	}

	stop()
	<-workerDone
	logger.Info("graceful shutdown complete")
	return nil
}
