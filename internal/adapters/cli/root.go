package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	region     string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "takeoff",
		Short: "takeoff - construction quantity takeoff and cost estimation",
		Long: `takeoff turns element dimensions into material quantities, prices them
against a regional catalog, and builds a bill of quantities with a full
financial summary.

Examples:
  takeoff estimate bungalow.yaml
  takeoff estimate bungalow.yaml --xlsx bungalow-boq.xlsx
  takeoff quote save bungalow.yaml
  takeoff quote list
  takeoff materials import prices.csv
  takeoff materials override --category cement --name Cement --price 780
  takeoff plan import ground-floor.pdf --out ground-floor.yaml
  takeoff config set-region NBO`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&region, "region", "",
		"Pricing region code (overrides the quote and user default)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewEstimateCommand())
	rootCmd.AddCommand(NewQuoteCommand())
	rootCmd.AddCommand(NewMaterialsCommand())
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
