package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"profile-shell/internal/app"
	"profile-shell/internal/config"
	"profile-shell/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// the logger is not configured yet; this still reaches stderr
		_ = logger.Init("info")
		logger.Fatal("failed to load config", map[string]any{
			"error": err.Error(),
		})
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", map[string]any{
			"error": err.Error(),
		})
	}

	go func() {
		if err := application.Run(); err != nil {
			logger.Fatal("http server failed", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	logger.Info("profile-shell started", map[string]any{
		"port":   cfg.AppPort,
		"tenant": cfg.TenantDomain,
	})

	<-ctx.Done()

	logger.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.ShutdownTimeout,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", map[string]any{
			"error": err.Error(),
		})
	}

	logger.Info("profile-shell stopped cleanly", nil)
}
