package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/seth-vargas/biztime/internal/app"
	"github.com/seth-vargas/biztime/internal/auth"
	"github.com/seth-vargas/biztime/internal/companies"
	"github.com/seth-vargas/biztime/internal/industries"
	"github.com/seth-vargas/biztime/internal/invoices"
	"github.com/seth-vargas/biztime/internal/observability"
	"github.com/seth-vargas/biztime/internal/platform/cache"
	"github.com/seth-vargas/biztime/internal/platform/db"
	"github.com/seth-vargas/biztime/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis unavailable, cache disabled", slog.Any("error", err))
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			}()
		}
	}
	listCache := cache.NewVersioned(redisClient, cfg.CacheTTL).WithLogger(logger)

	var (
		notifier   invoices.Notifier
		jobHandler *jobs.Handler
	)
	if cfg.JobsEnabled() {
		redisOpts, err := jobs.RedisOpt(cfg.RedisAddr)
		if err != nil {
			logger.Error("parse REDIS_ADDR", slog.Any("error", err))
			os.Exit(1)
		}
		jobClient := jobs.NewClient(redisOpts)
		defer func() {
			if err := jobClient.Close(); err != nil {
				logger.Warn("asynq client close", slog.Any("error", err))
			}
		}()
		notifier = jobClient

		inspector := asynq.NewInspector(redisOpts)
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("asynq inspector close", slog.Any("error", err))
			}
		}()
		jobHandler = jobs.NewHandler(inspector, logger)
	}

	metrics := observability.NewMetrics()

	companyService := companies.NewService(companies.NewRepository(dbpool), listCache, logger)
	invoiceService := invoices.NewService(invoices.NewRepository(dbpool), listCache, notifier, logger)
	industryService := industries.NewService(industries.NewRepository(dbpool), listCache, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Verifier:          auth.NewVerifier(cfg.APITokenHash),
		Metrics:           metrics,
		DB:                dbpool,
		CompaniesHandler:  companies.NewHandler(logger, companyService),
		InvoicesHandler:   invoices.NewHandler(logger, invoiceService),
		IndustriesHandler: industries.NewHandler(logger, industryService),
		JobsHandler:       jobHandler,
		AccessLog:         true,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
