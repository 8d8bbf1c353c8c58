package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect IslandEpoch configuration.

Configuration is loaded from multiple sources with priority:
1. Environment variables (IE_* prefix, e.g. IE_SAVE_BACKEND)
2. Config file (config.yaml)
3. Default values`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			titleColor.Fprintln(w, "IslandEpoch Configuration")
			fmt.Fprintln(w, "=========================")

			fmt.Fprintln(w, "\nSave:")
			fmt.Fprintf(w, "  Backend:          %s\n", cfg.Save.Backend)
			if cfg.Save.Backend == "file" {
				fmt.Fprintf(w, "  File:             %s/%s\n", cfg.Save.Dir, cfg.Save.FileName)
			} else {
				fmt.Fprintf(w, "  Slot:             %s\n", cfg.Save.Slot)
			}
			fmt.Fprintf(w, "  Compress:         %t\n", cfg.Save.Compress)

			fmt.Fprintln(w, "\nDatabase:")
			fmt.Fprintf(w, "  Type:             %s\n", cfg.Database.Type)
			fmt.Fprintf(w, "  DSN:              %s\n", maskPassword(cfg.Database.DSN()))

			fmt.Fprintln(w, "\nGame:")
			fmt.Fprintf(w, "  Tick interval:    %s\n", cfg.Game.TickInterval)
			fmt.Fprintf(w, "  Autosave:         every %d ticks or %s\n", cfg.Game.AutosaveEveryTicks, cfg.Game.AutosaveMinInterval)
			fmt.Fprintf(w, "  Unlock policy:    %s\n", cfg.Game.IslandUnlockPolicy)
			fmt.Fprintf(w, "  Research island:  %d\n", cfg.Game.ResearchIsland)
			fmt.Fprintf(w, "  Max catch-up:     %d ticks\n", cfg.Game.MaxCatchupTicks)
			if cfg.Game.CatalogPath != "" {
				fmt.Fprintf(w, "  Catalog:          %s\n", cfg.Game.CatalogPath)
			}

			fmt.Fprintln(w, "\nDaemon:")
			fmt.Fprintf(w, "  PID file:         %s\n", cfg.Daemon.PIDFile)
			fmt.Fprintf(w, "  Shutdown timeout: %s\n", cfg.Daemon.ShutdownTimeout)

			fmt.Fprintln(w, "\nLogging:")
			fmt.Fprintf(w, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(w, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(w, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(w, "\nMetrics:")
			fmt.Fprintf(w, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(w, "  Endpoint:         http://%s%s\n", cfg.Metrics.Address(), cfg.Metrics.Path)
			}

			return nil
		},
	}
}

// maskPassword hides the password in a postgres URL or key/value DSN
func maskPassword(dsn string) string {
	if i := strings.Index(dsn, "password="); i >= 0 {
		end := strings.IndexByte(dsn[i:], ' ')
		if end < 0 {
			return dsn[:i] + "password=****"
		}
		return dsn[:i] + "password=****" + dsn[i+end:]
	}
	scheme := strings.Index(dsn, "://")
	at := strings.LastIndex(dsn, "@")
	if scheme < 0 || at < scheme {
		return dsn
	}
	creds := dsn[scheme+3 : at]
	if colon := strings.IndexByte(creds, ':'); colon >= 0 {
		return dsn[:scheme+3] + creds[:colon] + ":****" + dsn[at:]
	}
	return dsn
}
