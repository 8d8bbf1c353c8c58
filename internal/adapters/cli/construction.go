package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/islandepoch/islandepoch-go/internal/application/economy/commands"
	"github.com/islandepoch/islandepoch-go/internal/application/economy/queries"
)

// NewBuildCommand places a building
func NewBuildCommand() *cobra.Command {
	var islandIndex int
	var slotIndex int

	cmd := &cobra.Command{
		Use:   "build <blueprint>",
		Short: "Construct a building",
		Long: `Pay the blueprint's gold cost and place an unstaffed building on an island.

Without --slot the lowest free slot is used. Use 'islandepoch blueprints'
to see which blueprints the island accepts right now.

Examples:
  islandepoch build farm
  islandepoch build mine --island 1 --slot 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &commands.BuildCommand{BlueprintID: args[0], IslandIndex: islandIndex}
			if cmd.Flags().Changed("slot") {
				command.SlotIndex = &slotIndex
			}
			return withGame(cmd, writeGame, func(ctx context.Context, app *App) error {
				resp, err := app.Send(ctx, command)
				if err != nil {
					return err
				}
				result := resp.(*commands.BuildResponse)
				successColor.Fprintf(cmd.OutOrStdout(), "Built %s in slot %d\n", args[0], result.SlotIndex)
				fmt.Fprintf(cmd.OutOrStdout(), "  Building ID: %s\n  Gold left:   %d\n", result.BuildingID, result.Gold)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&islandIndex, "island", 0, "Island index")
	cmd.Flags().IntVar(&slotIndex, "slot", 0, "Slot index (default: first free slot)")

	return cmd
}

// NewDemolishCommand removes a building
func NewDemolishCommand() *cobra.Command {
	var islandIndex int

	cmd := &cobra.Command{
		Use:   "demolish <building-id>",
		Short: "Remove a building for half its cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, writeGame, func(ctx context.Context, app *App) error {
				resp, err := app.Send(ctx, &commands.DemolishCommand{BuildingID: args[0], IslandIndex: islandIndex})
				if err != nil {
					return err
				}
				result := resp.(*commands.DemolishResponse)
				successColor.Fprintf(cmd.OutOrStdout(), "Demolished, refunded %d gold (now %d)\n", result.Refund, result.Gold)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&islandIndex, "island", 0, "Island index")

	return cmd
}

// NewBlueprintsCommand lists every blueprint with its availability on an island
func NewBlueprintsCommand() *cobra.Command {
	var islandIndex int

	cmd := &cobra.Command{
		Use:   "blueprints",
		Short: "List blueprints and whether they can be built",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, readGame, func(ctx context.Context, app *App) error {
				resp, err := app.Send(ctx, &queries.ListBlueprintsQuery{IslandIndex: islandIndex})
				if err != nil {
					return err
				}
				printBuildOptions(cmd.OutOrStdout(), resp.(*queries.ListBlueprintsResponse).Options)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&islandIndex, "island", 0, "Island index")

	return cmd
}

// NewAssignCommand moves an idle worker into a building
func NewAssignCommand() *cobra.Command {
	return newStaffingCommand("assign", "Assign one idle worker to a building", func(id string, island int) any {
		return &commands.AssignWorkerCommand{BuildingID: id, IslandIndex: island}
	})
}

// NewUnassignCommand returns a worker to the island pool
func NewUnassignCommand() *cobra.Command {
	return newStaffingCommand("unassign", "Return one worker from a building to the idle pool", func(id string, island int) any {
		return &commands.UnassignWorkerCommand{BuildingID: id, IslandIndex: island}
	})
}

func newStaffingCommand(use, short string, build func(buildingID string, islandIndex int) any) *cobra.Command {
	var islandIndex int

	cmd := &cobra.Command{
		Use:   use + " <building-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, writeGame, func(ctx context.Context, app *App) error {
				resp, err := app.Send(ctx, build(args[0], islandIndex))
				if err != nil {
					return err
				}
				result := resp.(*commands.WorkerAssignmentResponse)
				successColor.Fprintf(cmd.OutOrStdout(), "Building now has %d worker(s), %d idle on island\n",
					result.AssignedWorkers, result.UnassignedWorkers)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&islandIndex, "island", 0, "Island index")

	return cmd
}
