package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/islandepoch/islandepoch-go/internal/application/economy/commands"
	"github.com/islandepoch/islandepoch-go/internal/application/economy/queries"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
)

// NewGameCommand creates the game command with subcommands
func NewGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Create, save and delete games",
		Long: `Manage the saved game.

Examples:
  islandepoch game new
  islandepoch game delete`,
	}

	cmd.AddCommand(newGameNewCommand())
	cmd.AddCommand(newGameDeleteCommand())

	return cmd
}

func newGameNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Replace the save with a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, writeGame, func(ctx context.Context, app *App) error {
				if _, err := app.Send(ctx, &commands.NewGameCommand{}); err != nil {
					return err
				}
				successColor.Fprintln(cmd.OutOrStdout(), "New game started")
				return nil
			})
		},
	}
}

func newGameDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the save and start over",
		Long: `Delete the saved game. The next command starts a new game.

Example:
  islandepoch game delete`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, writeSave, func(ctx context.Context, app *App) error {
				if _, err := app.Send(ctx, &commands.DeleteSaveCommand{}); err != nil {
					return err
				}
				successColor.Fprintln(cmd.OutOrStdout(), "Save deleted")
				return nil
			})
		},
	}
}

// NewStatusCommand prints the game overview
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show gold, epoch, research and islands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, readGame, func(ctx context.Context, app *App) error {
				resp, err := app.Send(ctx, &queries.GetGameStateQuery{})
				if err != nil {
					return err
				}
				printGame(cmd.OutOrStdout(), resp.(*queries.GetGameStateResponse).Game)
				return nil
			})
		},
	}
}

// NewTickCommand advances the simulation
func NewTickCommand() *cobra.Command {
	var count int
	var elapsed time.Duration

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Advance the simulation",
		Long: `Advance the economy by one or more ticks.

Each tick pays passive gold income and runs every staffed building whose
inputs are in stock. Output from a tick is available from the next tick on.

Examples:
  islandepoch tick
  islandepoch tick --count 60
  islandepoch tick --count 10 --elapsed 5s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			return withGame(cmd, writeGame, func(ctx context.Context, app *App) error {
				resp, err := app.Send(ctx, &commands.AdvanceTickCommand{Elapsed: elapsed, Count: count})
				if err != nil {
					return err
				}
				result := resp.(*commands.AdvanceTickResponse)

				outcomes := make(map[string]int)
				for _, report := range result.Reports {
					for _, run := range report.Runs {
						outcomes[string(run.Outcome)]++
					}
				}

				w := cmd.OutOrStdout()
				successColor.Fprintf(w, "Advanced %d tick(s) to tick %d, gold %d\n", len(result.Reports), result.Tick, result.Gold)
				for _, outcome := range sortedKeys(outcomes) {
					line := fmt.Sprintf("  %-18s %d\n", outcome, outcomes[outcome])
					if outcome == string(production.OutcomeStarved) {
						infoColor.Fprint(w, line)
						continue
					}
					fmt.Fprint(w, line)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of ticks to run")
	cmd.Flags().DurationVar(&elapsed, "elapsed", time.Second, "Simulated time per tick")

	return cmd
}

// NewEpochCommand creates the epoch command with subcommands
func NewEpochCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "epoch",
		Short: "Epoch progression",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "advance",
		Short: "Move to the next epoch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, writeGame, func(ctx context.Context, app *App) error {
				resp, err := app.Send(ctx, &commands.AdvanceEpochCommand{})
				if err != nil {
					return err
				}
				result := resp.(*commands.AdvanceEpochResponse)
				if !result.Advanced {
					infoColor.Fprintf(cmd.OutOrStdout(), "Already in the final epoch (%d)\n", result.Epoch)
					return nil
				}
				successColor.Fprintf(cmd.OutOrStdout(), "Advanced to epoch %d\n", result.Epoch)
				return nil
			})
		},
	})

	return cmd
}
