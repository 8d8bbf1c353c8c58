package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/islandepoch/islandepoch-go/internal/adapters/catalog"
	"github.com/islandepoch/islandepoch-go/internal/adapters/metrics"
	"github.com/islandepoch/islandepoch-go/internal/adapters/persistence"
	"github.com/islandepoch/islandepoch-go/internal/application/common"
	"github.com/islandepoch/islandepoch-go/internal/application/economy/commands"
	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/setup"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
	"github.com/islandepoch/islandepoch-go/internal/infrastructure/config"
	"github.com/islandepoch/islandepoch-go/internal/infrastructure/database"
	"github.com/islandepoch/islandepoch-go/internal/infrastructure/logging"
)

// App is a fully wired game: mediator, save backend, metrics and logger.
// The CLI builds one per invocation and the daemon keeps one for its lifetime.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Mediator mediator.Mediator
	Catalogs *catalog.Catalogs
	Metrics  *prometheus.Registry
	Economy  *metrics.EconomyCollector
	Clock    shared.Clock

	closers []io.Closer
}

// AppOptions override parts of the wiring, mainly for tests
type AppOptions struct {
	Clock      shared.Clock
	IDs        shared.IDGenerator
	Repository game.SaveRepository
	Logger     *zerolog.Logger
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// NewApp wires every component described by cfg
func NewApp(cfg *config.Config, opts AppOptions) (*App, error) {
	app := &App{Config: cfg, Clock: opts.Clock}
	if app.Clock == nil {
		app.Clock = shared.NewRealClock()
	}

	if opts.Logger != nil {
		app.Logger = *opts.Logger
	} else {
		logger, closer, err := logging.New(cfg.Logging)
		if err != nil {
			return nil, err
		}
		app.Logger = logger
		app.closers = append(app.closers, closer)
	}

	catalogs, err := catalog.LoadOrDefault(cfg.Game.CatalogPath)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Catalogs = catalogs

	policy, err := island.ParseUnlockPolicy(cfg.Game.IslandUnlockPolicy)
	if err != nil {
		app.Close()
		return nil, err
	}

	repo := opts.Repository
	if repo == nil {
		if repo, err = app.openRepository(); err != nil {
			app.Close()
			return nil, err
		}
	}

	deps := setup.Dependencies{
		Blueprints:     catalogs.Blueprints,
		Research:       catalogs.Research,
		Repository:     repo,
		IDs:            opts.IDs,
		Clock:          app.Clock,
		Policy:         policy,
		ResearchIsland: cfg.Game.ResearchIsland,
	}

	middleware := []mediator.Middleware{common.LoggingMiddleware(app.Logger)}
	if cfg.Metrics.Enabled {
		app.Metrics = metrics.NewRegistry()
		app.Economy = metrics.NewEconomyCollector(catalogs.Blueprints)
		commandMetrics := metrics.NewCommandMetricsCollector()
		if err := errors.Join(app.Economy.Register(app.Metrics), commandMetrics.Register(app.Metrics)); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		deps.Recorder = app.Economy
		middleware = append(middleware, metrics.PrometheusMiddleware(commandMetrics))
	}

	registry := setup.NewHandlerRegistry(deps)
	med, err := registry.CreateConfiguredMediator(middleware...)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Mediator = med

	return app, nil
}

func (a *App) openRepository() (game.SaveRepository, error) {
	save := a.Config.Save
	switch save.Backend {
	case "", "file":
		return persistence.NewFileSaveRepository(save.Dir, save.FileName, save.Compress), nil
	case "database":
		db, err := database.NewConnection(&a.Config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, closerFunc(func() error { return database.Close(db) }))
		if err := database.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return persistence.NewGormSaveRepository(db, save.Slot, save.Compress, a.Clock), nil
	default:
		return nil, fmt.Errorf("unsupported save backend: %s", save.Backend)
	}
}

// Context returns a context carrying the app logger
func (a *App) Context(parent context.Context) context.Context {
	return a.Logger.WithContext(parent)
}

// Send dispatches request through the mediator
func (a *App) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return a.Mediator.Send(a.Context(ctx), request)
}

// Load restores the saved game or starts a new one
func (a *App) Load(ctx context.Context) (*commands.LoadGameResponse, error) {
	resp, err := a.Send(ctx, &commands.LoadGameCommand{})
	if err != nil {
		return nil, err
	}
	return resp.(*commands.LoadGameResponse), nil
}

// Save persists the running game
func (a *App) Save(ctx context.Context) error {
	_, err := a.Send(ctx, &commands.SaveGameCommand{})
	return err
}

// Close releases the database and log file in reverse order of acquisition
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
