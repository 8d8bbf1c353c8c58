package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/islandepoch/islandepoch-go/internal/application/economy/commands"
	"github.com/islandepoch/islandepoch-go/internal/application/economy/queries"
)

// NewResearchCommand creates the research command with subcommands
func NewResearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "research",
		Short: "List and complete research",
		Long: `Research is paid for with resources from one island's stock.

Examples:
  islandepoch research list
  islandepoch research complete exploration
  islandepoch research complete metalHatchets --island 1`,
	}

	cmd.AddCommand(newResearchListCommand())
	cmd.AddCommand(newResearchCompleteCommand())

	return cmd
}

func newResearchListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List research and completion status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, readGame, func(ctx context.Context, app *App) error {
				resp, err := app.Send(ctx, &queries.ListResearchQuery{})
				if err != nil {
					return err
				}
				printResearch(cmd.OutOrStdout(), resp.(*queries.ListResearchResponse).Research)
				return nil
			})
		},
	}
}

func newResearchCompleteCommand() *cobra.Command {
	var islandIndex int

	cmd := &cobra.Command{
		Use:   "complete <research-id>",
		Short: "Pay for and complete a research",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &commands.CompleteResearchCommand{ResearchID: args[0]}
			if cmd.Flags().Changed("island") {
				command.IslandIndex = &islandIndex
			}
			return withGame(cmd, writeGame, func(ctx context.Context, app *App) error {
				if _, err := app.Send(ctx, command); err != nil {
					return err
				}
				successColor.Fprintf(cmd.OutOrStdout(), "Research %s completed\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&islandIndex, "island", 0, "Island that pays (default: game.research_island)")

	return cmd
}
