package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"neighbourcam/internal/api"
	"neighbourcam/internal/config"
	"neighbourcam/internal/geo"
	"neighbourcam/internal/redis"
	"neighbourcam/internal/service"
	"neighbourcam/internal/storage/postgres"
	"neighbourcam/internal/workers"
	"neighbourcam/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Sweeper    *workers.Sweeper
	Sender     *service.NotificationSender
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")

	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	notifyQueue := redis.NewNotificationQueue(redisClient.Client, "notifications:queue")

	obfuscator := geo.NewObfuscator(logger, cfg.Policy.ObfuscationRadiusM)
	estimator := geo.NewDensityEstimator(obfuscator)

	matcher := service.NewMatcher(storage.Devices, storage.Markers, logger)
	notifier := service.NewQueueNotifier(notifyQueue, logger)

	deviceSvc := service.NewDeviceService(
		storage.Devices,
		storage.Markers,
		obfuscator,
		cfg.Policy.ObfuscationRadiusM,
		cfg.Policy.MarkerTTL,
		logger,
	)
	lifecycleSvc := service.NewLifecycleService(
		storage.Requests,
		storage.Devices,
		matcher,
		notifier,
		cfg.Policy,
		logger,
	)
	quotaSvc := service.NewQuotaService(storage.Quotas, cfg.Policy.WeeklyRequestLimit, logger)
	archiveSvc := service.NewArchiveService(storage.Requests, storage.Archive, cfg.Policy, logger)
	coverageSvc := service.NewCoverageService(storage.Devices, estimator, logger)

	srv := service.NewService(deviceSvc, lifecycleSvc, quotaSvc, archiveSvc, coverageSvc)

	httpServer := api.NewServer(cfg, logger, srv)
	logger.Info("Initialized server")

	sweeper := workers.NewSweeper(logger, lifecycleSvc, archiveSvc, cfg.Policy.SweepInterval)
	sender := service.NewNotificationSender(logger, cfg.Notify, notifyQueue)

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		Sweeper:    sweeper,
		Sender:     sender,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
