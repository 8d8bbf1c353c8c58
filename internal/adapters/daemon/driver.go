// Package daemon drives a loaded game in real time: one tick per interval, offline
// catch-up on start, periodic autosave and a final save on shutdown.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/islandepoch/islandepoch-go/internal/application/economy/commands"
	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
	"github.com/islandepoch/islandepoch-go/internal/infrastructure/config"
)

// Driver sends tick and save commands through the mediator on a schedule
type Driver struct {
	mediator   mediator.Mediator
	clock      shared.Clock
	interval   time.Duration
	maxCatchup int
	autosave   *rate.Sometimes
	logger     zerolog.Logger
}

// NewDriver creates a driver for the game settings in cfg
func NewDriver(med mediator.Mediator, cfg config.GameConfig, clock shared.Clock, logger zerolog.Logger) *Driver {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Driver{
		mediator:   med,
		clock:      clock,
		interval:   cfg.TickInterval,
		maxCatchup: cfg.MaxCatchupTicks,
		autosave:   &rate.Sometimes{Every: cfg.AutosaveEveryTicks, Interval: cfg.AutosaveMinInterval},
		logger:     logger.With().Str("component", "driver").Logger(),
	}
}

// CatchupTicks converts the time since lastUpdate into whole ticks, capped by the configured maximum
func (d *Driver) CatchupTicks(lastUpdate time.Time) int {
	if d.maxCatchup < 0 || lastUpdate.IsZero() || d.interval <= 0 {
		return 0
	}
	offline := d.clock.Now().Sub(lastUpdate)
	if offline <= 0 {
		return 0
	}
	ticks := int(offline / d.interval)
	if ticks > d.maxCatchup {
		return d.maxCatchup
	}
	return ticks
}

// CatchUp replays the ticks missed while no driver was running
func (d *Driver) CatchUp(ctx context.Context, lastUpdate time.Time) (int, error) {
	ticks := d.CatchupTicks(lastUpdate)
	if ticks == 0 {
		return 0, nil
	}
	if _, err := d.send(ctx, &commands.AdvanceTickCommand{Elapsed: d.interval, Count: ticks}); err != nil {
		return 0, fmt.Errorf("offline catch-up failed: %w", err)
	}
	d.logger.Info().Int("ticks", ticks).Time("last_update", lastUpdate).Msg("caught up offline progress")
	return ticks, nil
}

// Run ticks every interval until ctx is cancelled
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	return d.RunWith(ctx, ticker.C)
}

// RunWith ticks once per value received on ticks until ctx is cancelled or ticks is closed
func (d *Driver) RunWith(ctx context.Context, ticks <-chan time.Time) error {
	d.logger.Info().Dur("interval", d.interval).Msg("driver started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			if err := d.Step(ctx); err != nil {
				return err
			}
		}
	}
}

// Step advances one tick and autosaves when due
func (d *Driver) Step(ctx context.Context) error {
	if _, err := d.send(ctx, &commands.AdvanceTickCommand{Elapsed: d.interval}); err != nil {
		return fmt.Errorf("tick failed: %w", err)
	}

	var saveErr error
	d.autosave.Do(func() {
		saveErr = d.Save(ctx)
	})
	if saveErr != nil {
		// A failed autosave is retried on the next due tick
		d.logger.Error().Err(saveErr).Msg("autosave failed")
	}
	return nil
}

// Save writes the game through the configured repository
func (d *Driver) Save(ctx context.Context) error {
	resp, err := d.send(ctx, &commands.SaveGameCommand{})
	if err != nil {
		return err
	}
	d.logger.Info().Int64("tick", resp.(*commands.SaveGameResponse).Tick).Msg("game saved")
	return nil
}

// Shutdown performs the final save, bounded by timeout
func (d *Driver) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(d.logger.WithContext(context.Background()), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.Save(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return errors.New("final save did not finish before the shutdown timeout")
	}
}

func (d *Driver) send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return d.mediator.Send(ctx, request)
}
