package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/islandepoch/islandepoch-go/internal/infrastructure/config"
	"github.com/islandepoch/islandepoch-go/internal/infrastructure/pidfile"
)

// ErrDaemonRunning is returned by changing commands while the daemon owns the save
var ErrDaemonRunning = errors.New("daemon is running")

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// newApp is replaced in tests to inject a memory save and a mock clock
var newApp = func(cfg *config.Config) (*App, error) {
	return NewApp(cfg, AppOptions{})
}

// loadConfig reads the --config file, raising the log level with --verbose
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// gameAccess says what a command does with the save
type gameAccess int

const (
	readGame gameAccess = iota
	// the game is written back after fn succeeds
	writeGame
	// fn changes the save itself, e.g. deleting it
	writeSave
)

func (a gameAccess) changesSave() bool {
	return a != readGame
}

// withGame loads the save and runs fn, writing the game back for writeGame.
// Changing commands are refused while a live daemon holds the PID file.
func withGame(cmd *cobra.Command, access gameAccess, fn func(ctx context.Context, app *App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if access.changesSave() {
		if pid, held := pidfile.New(cfg.Daemon.PIDFile).IsHeld(); held {
			return fmt.Errorf("%w (PID %d): stop it before changing the save", ErrDaemonRunning, pid)
		}
	}

	app, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := app.Context(cmd.Context())
	loaded, err := app.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}
	if loaded.Fresh {
		infoColor.Fprintln(cmd.ErrOrStderr(), "No save found, started a new game")
	}

	if err := fn(ctx, app); err != nil {
		return err
	}
	if access != writeGame {
		return nil
	}
	if err := app.Save(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

// kinded mirrors the domain error families that expose a machine readable kind
type kinded interface {
	error
	KindName() string
}

// describeError prefixes domain rejections with their kind, e.g. "NO_SLOTS: Main Isle has no free slot"
func describeError(err error) string {
	var k kinded
	if errors.As(err, &k) {
		return errorColor.Sprint(k.KindName()) + ": " + k.Error()
	}
	return errorColor.Sprint("error") + ": " + err.Error()
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
