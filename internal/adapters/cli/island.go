package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/islandepoch/islandepoch-go/internal/application/economy/queries"
)

// NewIslandCommand shows one island in detail
func NewIslandCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "island <index>",
		Short: "Show an island's slots, workers and stock",
		Long: `Show one island: every slot with its building, staffing and productivity,
followed by the resource stock and per-tick flows.

Example:
  islandepoch island 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid island index %q", args[0])
			}
			return withGame(cmd, readGame, func(ctx context.Context, app *App) error {
				resp, err := app.Send(ctx, &queries.GetIslandQuery{IslandIndex: index})
				if err != nil {
					return err
				}
				printIsland(cmd.OutOrStdout(), resp.(*queries.GetIslandResponse).Island)
				return nil
			})
		},
	}
}

// NewRatesCommand prints production and consumption per tick
func NewRatesCommand() *cobra.Command {
	var islandIndex int

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show per-tick production and consumption",
		Long: `Show nominal (fully staffed) and actual per-tick flows for one island,
or for the whole game when --island is omitted.

Examples:
  islandepoch rates
  islandepoch rates --island 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := &queries.GetProductionRatesQuery{}
			if cmd.Flags().Changed("island") {
				query.IslandIndex = &islandIndex
			}
			return withGame(cmd, readGame, func(ctx context.Context, app *App) error {
				resp, err := app.Send(ctx, query)
				if err != nil {
					return err
				}
				printRates(cmd.OutOrStdout(), resp.(*queries.GetProductionRatesResponse).Rates)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&islandIndex, "island", 0, "Island index (default: whole game)")

	return cmd
}

// NewProductivityCommand prints one building's productivity
func NewProductivityCommand() *cobra.Command {
	var islandIndex int

	cmd := &cobra.Command{
		Use:   "productivity <building-id>",
		Short: "Show a building's current productivity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, readGame, func(ctx context.Context, app *App) error {
				resp, err := app.Send(ctx, &queries.GetBuildingProductivityQuery{BuildingID: args[0], IslandIndex: islandIndex})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.(*queries.GetBuildingProductivityResponse).Percent)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&islandIndex, "island", 0, "Island index")

	return cmd
}
