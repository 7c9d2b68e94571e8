package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/takeoff-go/internal/adapters/quotefile"
	"github.com/andrescamacho/takeoff-go/internal/application/estimate"
	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
)

// NewPlanCommand creates the plan command with subcommands
func NewPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Work with architectural plan drawings",
	}
	cmd.AddCommand(newPlanImportCommand())
	return cmd
}

func newPlanImportCommand() *cobra.Command {
	var (
		out    string
		into   string
		height float64
		mix    string
		title  string
	)

	cmd := &cobra.Command{
		Use:   "import <drawing>",
		Short: "Extract rooms and floor slabs from a plan drawing",
		Long: `Send a plan drawing (PDF or image) to the configured plan extraction
service and turn the rooms it finds into masonry rooms and floor slabs.

Requires plan_extraction.base_url to be configured.

Examples:
  takeoff plan import ground-floor.pdf --out bungalow.yaml
  takeoff plan import upper-floor.png --into bungalow.yaml --height 2.8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" && into == "" {
				return fmt.Errorf("one of --out or --into is required")
			}
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read drawing: %w", err)
			}

			state := quote.State{Title: title, Settings: quote.DefaultSettings()}
			dest := out
			if into != "" {
				if state, err = quotefile.Load(into); err != nil {
					return err
				}
				dest = into
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if !a.cfg.PlanExtraction.Enabled() {
				return fmt.Errorf("plan extraction is not configured: set plan_extraction.base_url")
			}

			resp, err := a.send(&estimate.ImportPlanCommand{
				FileName:      filepath.Base(args[0]),
				Content:       content,
				DefaultHeight: height,
				SlabMix:       mix,
			})
			if err != nil {
				return err
			}
			plan := resp.(*estimate.ImportPlanResponse)

			state.Masonry = append(state.Masonry, plan.Rooms...)
			state.Concrete = append(state.Concrete, plan.Slabs...)
			if err := quotefile.Save(dest, state); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %d room(s) and %d slab(s) to %s\n", len(plan.Rooms), len(plan.Slabs), dest)
			if plan.Notes != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  Notes: %s\n", plan.Notes)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write a new quote file")
	cmd.Flags().StringVar(&into, "into", "", "Merge into an existing quote file")
	cmd.Flags().Float64Var(&height, "height", 0, "Wall height for rooms the plan gives none (default 3.0)")
	cmd.Flags().StringVar(&mix, "mix", "", "Concrete mix for floor slabs (default 1:2:4)")
	cmd.Flags().StringVar(&title, "title", "", "Title for a new quote file")
	cmd.MarkFlagsMutuallyExclusive("out", "into")
	return cmd
}
