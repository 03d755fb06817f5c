package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/i-m-samarth-cs/kisan-connect/internal/config"
	"github.com/i-m-samarth-cs/kisan-connect/internal/logging"
	"github.com/i-m-samarth-cs/kisan-connect/internal/server"
	"github.com/i-m-samarth-cs/kisan-connect/internal/telemetry"
)

const sessionSweepInterval = time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env は任意（無ければ環境変数のみ）
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	shutdownTracing, err := telemetry.Setup(cfg.Tracing, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("close failed", zap.Error(err))
		}
	}()

	// 放置セッションの掃除
	go app.Sessions.Run(ctx, sessionSweepInterval)

	log.Info("starting server",
		zap.String("addr", cfg.Addr()),
		zap.Bool("backend_configured", cfg.IsBackendConfigured()),
	)
	return server.Start(ctx, cfg.Addr(), app.Echo, log)
}
