package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "islandepoch",
		Short: "IslandEpoch - run and inspect an island colony economy",
		Long: `IslandEpoch manages a saved colony: islands host buildings that turn
resources into other resources, staffed by workers housed on the same island.

Every command loads the save (or starts a new game when none exists), applies
its change and writes the save back.

Examples:
  islandepoch status
  islandepoch island 0
  islandepoch build farm --island 0
  islandepoch assign <building-id> --island 0
  islandepoch tick --count 60
  islandepoch research complete exploration`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./configs, /etc/islandepoch)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewGameCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewIslandCommand())
	rootCmd.AddCommand(NewRatesCommand())
	rootCmd.AddCommand(NewTickCommand())
	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewDemolishCommand())
	rootCmd.AddCommand(NewBlueprintsCommand())
	rootCmd.AddCommand(NewAssignCommand())
	rootCmd.AddCommand(NewUnassignCommand())
	rootCmd.AddCommand(NewProductivityCommand())
	rootCmd.AddCommand(NewResearchCommand())
	rootCmd.AddCommand(NewEpochCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}
