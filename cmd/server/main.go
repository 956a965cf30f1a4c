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

	"PassKeeper/internal/cli/bootstrap"
	"PassKeeper/internal/config"
	"PassKeeper/internal/handlers"
	"PassKeeper/internal/logger"
	"PassKeeper/internal/middleware"
	"PassKeeper/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfg := config.NewConfig()
	if cfg.Version {
		fmt.Printf("PassKeeper local API\nVersion: %s\nBuild date: %s\n", version, buildDate)
		return
	}

	sugar, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = sugar.Sync()
	}()

	if err := cfg.Validate(); err != nil {
		sugar.Fatalw("invalid configuration", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	session, closeStore, err := bootstrap.OpenSession(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to open vault storage", "error", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			sugar.Errorw("failed to close vault storage", "error", err)
		}
	}()

	idle := service.NewIdleLocker(cfg.IdleTimeout, session.Logout)
	defer idle.Stop()
	session.OnLock(idle.Stop)

	if cfg.EnsureAuthSecret() {
		sugar.Infow("AUTH_SECRET is not set, using an ephemeral signing secret")
	}
	h := handlers.NewHandler(session, idle, sugar, cfg)

	sugar.Infow("Starting local API",
		"addr", cfg.BaseURL,
		"storage", cfg.StorageDriver,
		"state", session.State().String(),
		"idle_timeout", cfg.IdleTimeout,
	)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Errorw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}
