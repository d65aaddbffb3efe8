package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adda-Baaj/swapi-curl/internal/app"
	"github.com/Adda-Baaj/swapi-curl/internal/config"
	"github.com/Adda-Baaj/swapi-curl/internal/logger"
	"github.com/Adda-Baaj/swapi-curl/internal/scripts"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "swapi-headers start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("swapi-headers starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := app.NewRunner(cfg, log, nil, os.Stdout)
	if err != nil {
		logger.ErrorObj("failed to initialize runner", "error", err)
		return err
	}

	return runner.Run(ctx, scripts.IDHeaders)
}
