package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/JonMunkholm/stockroom/internal/config"
	"github.com/JonMunkholm/stockroom/internal/core"
	"github.com/JonMunkholm/stockroom/internal/logging"
	"github.com/JonMunkholm/stockroom/internal/storage"
	"github.com/JonMunkholm/stockroom/internal/web"
)

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file to load before reading the environment")
	pflag.Parse()

	// Overload lets the file win over variables already set in the shell
	if err := godotenv.Overload(*envFile); err != nil {
		slog.Info("no .env file found, using environment variables", "file", *envFile)
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)", "file", *envFile)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, err := storage.Open(ctx, storage.Options{
		Driver:      cfg.Storage.Driver,
		Path:        cfg.Storage.Path,
		DatabaseURL: cfg.Storage.DatabaseURL,
		MaxConns:    cfg.Storage.MaxConns,
	})
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	store, err := core.OpenStore(ctx, kv, core.StoreOptions{
		Key:  cfg.Storage.Key,
		Seed: cfg.Catalog.Seed,
	})
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		kv.Close()
		os.Exit(1)
	}

	server := web.NewServer(store, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	exitCode := 0
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			exitCode = 1
		}
	case <-ctx.Done():
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		cancel()
	}

	if err := kv.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
	slog.Info("server stopped")
	os.Exit(exitCode)
}
