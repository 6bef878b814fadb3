package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bingbr/bard/internal/app"
	"github.com/bingbr/bard/internal/config"
)

func main() {
	bootLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		bootLogger.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Parse()
	if err != nil {
		bootLogger.Error("config error", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if err := app.Run(ctx, cfg); err != nil {
		logger.Error("application error", "error", err)
		stop()
		os.Exit(1)
	}
}
