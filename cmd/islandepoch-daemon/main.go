package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/islandepoch/islandepoch-go/internal/adapters/cli"
	"github.com/islandepoch/islandepoch-go/internal/adapters/daemon"
	"github.com/islandepoch/islandepoch-go/internal/infrastructure/config"
	"github.com/islandepoch/islandepoch-go/internal/infrastructure/pidfile"
)

func main() {
	// Parse command-line flags
	configFlag := flag.String("config", "", "Path to config file (default: search ., ./configs, /etc/islandepoch)")
	flag.Parse()

	fmt.Println("IslandEpoch Daemon v0.1.0")
	fmt.Println("=========================")

	// Load configuration
	cfg := config.MustLoadConfig(*configFlag)

	// Acquire PID file lock to prevent two drivers ticking the same save
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()

	if err := run(cfg); err != nil {
		log.Printf("Fatal error: %v", err)
		_ = pf.Release()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	app, err := cli.NewApp(cfg, cli.AppOptions{})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer app.Close()
	logger := app.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = app.Context(ctx)

	loaded, err := app.Load(ctx)
	if err != nil {
		return err
	}

	driver := daemon.NewDriver(app.Mediator, cfg.Game, app.Clock, logger)
	if !loaded.Fresh {
		if _, err := driver.CatchUp(ctx, loaded.Snapshot.LastUpdateTime); err != nil {
			return err
		}
	}

	if app.Metrics != nil {
		server := daemon.NewMetricsServer(cfg.Metrics, app.Metrics, logger)
		server.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	runErr := driver.Run(ctx)

	logger.Info().Msg("shutdown signal received, saving game")
	if err := driver.Shutdown(cfg.Daemon.ShutdownTimeout); err != nil {
		logger.Error().Err(err).Msg("final save failed")
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}
