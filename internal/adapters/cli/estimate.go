package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/takeoff-go/internal/adapters/export"
	"github.com/andrescamacho/takeoff-go/internal/adapters/quotefile"
	"github.com/andrescamacho/takeoff-go/internal/application/estimate"
	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
)

// NewEstimateCommand creates the estimate command
func NewEstimateCommand() *cobra.Command {
	var (
		xlsxPath string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "estimate <quote-file>",
		Short: "Price a quote file without saving it",
		Long: `Run every calculator over a quote file (JSON or YAML), price the
materials against the catalog and print the bill of quantities and the
financial summary.

Examples:
  takeoff estimate bungalow.yaml
  takeoff estimate bungalow.yaml --region MSA
  takeoff estimate bungalow.json --xlsx bungalow-boq.xlsx
  takeoff estimate bungalow.yaml --json > result.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := quotefile.Load(args[0])
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.send(&estimate.RecomputeQuoteQuery{State: state, Region: region})
			if err != nil {
				return fmt.Errorf("failed to estimate quote: %w", err)
			}
			result := resp.(*estimate.RecomputeQuoteResponse).Result

			return renderResult(cmd, state.Title, result, asJSON, xlsxPath)
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the bill of quantities to this Excel file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")

	return cmd
}

// renderResult prints a result as a table or JSON and optionally exports it
func renderResult(cmd *cobra.Command, title string, result quote.Result, asJSON bool, xlsxPath string) error {
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		if title != "" {
			fmt.Fprintf(out, "%s\n\n", title)
		}
		printBOQ(out, result.BOQ)
		fmt.Fprintln(out)
		printSummary(out, result.Summary)
		printUnresolved(os.Stderr, result)
	}

	if xlsxPath != "" {
		if err := (export.Workbook{Title: title, Result: result}).Save(xlsxPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Bill of quantities written to %s\n", xlsxPath)
	}
	return nil
}
