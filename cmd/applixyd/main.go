package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"applixy/internal/config"
	"applixy/internal/feed"
	"applixy/internal/storage/mongodb"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := mongodb.Connect(ctx, cfg.Store.URI, cfg.Store.Database, logger)
	if err != nil {
		logger.Error("failed to connect to document store", "error", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	saved := feed.NewSavedRegistry()
	controller := feed.NewController(saved, logger)

	sub, err := store.Watch(ctx, cfg.Feed.Collection)
	if err != nil {
		logger.Error("failed to open subscription", "collection", cfg.Feed.Collection, "error", err)
		os.Exit(1)
	}
	defer sub.Close()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting applixy feed daemon", "collection", cfg.Feed.Collection)

	if err := controller.Run(ctx, sub); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("feed stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
