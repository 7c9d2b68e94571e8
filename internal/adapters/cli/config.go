package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/takeoff-go/internal/adapters/persistence"
	"github.com/andrescamacho/takeoff-go/internal/infrastructure/config"
	"github.com/andrescamacho/takeoff-go/internal/infrastructure/database"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage takeoff configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (TAKEOFF_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default region, current quote) are stored in
~/.takeoff/config.json

Examples:
  takeoff config show
  takeoff config set-region NBO
  takeoff config clear`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetRegionCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Takeoff Configuration")
			fmt.Fprintln(out, "=====================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			fmt.Fprintf(out, "  Default Region:   %s\n", orNotSet(userCfg.DefaultRegion))
			fmt.Fprintf(out, "  Current Quote:    %s\n", orNotSet(userCfg.CurrentQuoteID))

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
				fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
			}

			fmt.Fprintln(out, "\nPricing:")
			fmt.Fprintf(out, "  Region:           %s\n", orNotSet(cfg.Pricing.Region))
			fmt.Fprintf(out, "  Multiplier:       %g\n", cfg.Pricing.RegionalMultiplier)

			fmt.Fprintln(out, "\nPlan Extraction:")
			if cfg.PlanExtraction.Enabled() {
				fmt.Fprintf(out, "  Base URL:         %s\n", cfg.PlanExtraction.BaseURL)
				fmt.Fprintf(out, "  Timeout:          %s\n", cfg.PlanExtraction.Timeout)
				fmt.Fprintf(out, "  Rate Limit:       %g req/s (burst: %d)\n",
					cfg.PlanExtraction.RateLimit.Requests, cfg.PlanExtraction.RateLimit.Burst)
				fmt.Fprintf(out, "  Max Retries:      %d\n", cfg.PlanExtraction.Retry.MaxAttempts)
			} else {
				fmt.Fprintln(out, "  (disabled)")
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Textfile:         %s\n", cfg.Metrics.TextfilePath)
			} else {
				fmt.Fprintln(out, "  (disabled)")
			}
			return nil
		},
	}
}

func newConfigSetRegionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-region <code>",
		Short: "Set the default pricing region",
		Long: `Set the region used for quotes that name none.

The region must exist (see 'takeoff materials region').

Example:
  takeoff config set-region NBO`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.Open(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			r, err := persistence.NewGormRegionRepository(db).FindByCode(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("region '%s' not found", args[0])
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultRegion(r.Code); err != nil {
				return fmt.Errorf("failed to set default region: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default region set to %s (multiplier %g)\n", r.Code, r.Multiplier)
			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear user preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.Clear(); err != nil {
				return fmt.Errorf("failed to clear user config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ User preferences cleared")
			return nil
		},
	}
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
