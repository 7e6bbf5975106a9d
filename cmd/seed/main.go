package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/devfolio/internal/logging"
	"github.com/dmitrijs2005/devfolio/internal/seed"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewTextLogger(os.Stdout, slog.LevelInfo)

	fixtures, err := seed.LoadFixtures()
	if err != nil {
		logger.Error(ctx, "load fixtures", "error", err)
		os.Exit(1)
	}

	cfg := seed.DefaultConfig()
	logger.Info(ctx, "seeding", "api", cfg.APIURL)

	_, err = seed.NewGenerator(cfg, fixtures, nil, logger).Run(ctx)
	switch {
	case errors.Is(err, seed.ErrAuthentication):
		os.Exit(1)
	case err != nil:
		logger.Warn(ctx, "seeding interrupted", "error", err)
		os.Exit(1)
	}
}
