package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/devfolio/internal/client/cli"
	"github.com/dmitrijs2005/devfolio/internal/client/config"
	"github.com/dmitrijs2005/devfolio/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewTextLogger(os.Stderr, level)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
