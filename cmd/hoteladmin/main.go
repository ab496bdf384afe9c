package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hongminglow/hotel-admin/internal/app"
	"github.com/hongminglow/hotel-admin/internal/cli"
	"github.com/hongminglow/hotel-admin/internal/config"
)

func main() {
	envErr := loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}

	logger := setupLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Debug("no .env file found; relying on existing environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, nav app.Navigator) (*app.App, error) {
		return app.FromConfig(ctx, cfg, nav, logger)
	}
	code := cli.Run(ctx, factory, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func loadLocalEnv() error {
	return godotenv.Load()
}

func setupLogger(w io.Writer, cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.Env == config.EnvDev {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
