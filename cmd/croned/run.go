package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flemzord/croned/internal/config"
	"github.com/flemzord/croned/internal/executor"
	"github.com/flemzord/croned/internal/gateway"
	"github.com/flemzord/croned/internal/job"
	"github.com/flemzord/croned/internal/scheduler"
	"github.com/flemzord/croned/internal/store/sqlite"
)

// shutdownTimeout bounds how long Stop may wait for in-flight work.
const shutdownTimeout = 10 * time.Second

// run wires the store, executor registry, scheduler, and gateway, then
// blocks until a shutdown signal arrives.
func run(cfg *config.Config) error {
	logger := newLogger(cfg.LogLevel)

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}

	sched, err := scheduler.New(store, registry, scheduler.Config{
		TickInterval:    cfg.Scheduler.TickInterval,
		DispatchTimeout: cfg.Scheduler.DispatchTimeout,
		MaxConcurrent:   cfg.Scheduler.MaxConcurrent,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	gw, err := gateway.New(cfg.Gateway, store, logger)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	if err := gw.Start(); err != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = sched.Stop(stopCtx)
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := sched.Stop(ctx); err != nil {
		logger.Error("scheduler shutdown error", "error", err)
	}
	if err := gw.Stop(ctx); err != nil {
		logger.Error("gateway shutdown error", "error", err)
	}

	logger.Info("stopped")
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// openStore opens the SQLite store, or the in-memory store when no
// database path is configured.
func openStore(cfg *config.Config, logger *slog.Logger) (job.Store, func(), error) {
	if cfg.Database.Path == "" {
		logger.Warn("no database path configured, jobs will not survive restarts")
		return job.NewMemStore(), func() {}, nil
	}

	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("job store opened", "path", cfg.Database.Path)
	return store, func() { _ = store.Close() }, nil
}

// buildRegistry constructs the executor registry from configuration. The
// log variant is always available; webhook and shell are registered only
// when configured.
func buildRegistry(cfg *config.Config, logger *slog.Logger) (*executor.Registry, error) {
	registry := executor.NewRegistry(cfg.ExecutorRules(), cfg.Executors.Default)

	if err := registry.Register(executor.NewLog(logger)); err != nil {
		return nil, err
	}

	if cfg.Executors.Webhook.URL != "" {
		wh := executor.NewWebhook(cfg.Executors.Webhook.URL, cfg.Executors.Webhook.Timeout, logger)
		if err := registry.Register(wh); err != nil {
			return nil, err
		}
	}

	if len(cfg.Executors.Shell.Command) > 0 {
		sh, err := executor.NewShell(cfg.Executors.Shell.Command, logger)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(sh); err != nil {
			return nil, err
		}
	}

	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("executor configuration: %w", err)
	}
	return registry, nil
}
