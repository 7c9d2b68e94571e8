package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/takeoff-go/internal/adapters/quotefile"
	"github.com/andrescamacho/takeoff-go/internal/application/estimate"
	"github.com/andrescamacho/takeoff-go/internal/infrastructure/config"
)

// NewQuoteCommand creates the quote command with subcommands
func NewQuoteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Manage saved quotes",
		Long: `Save, list, show, export and delete quotes stored in the database.

Commands taking a quote ID fall back to the current quote
(set with 'takeoff quote use <id>').

Examples:
  takeoff quote save bungalow.yaml
  takeoff quote list
  takeoff quote show 3f2c...
  takeoff quote show --xlsx bungalow.xlsx
  takeoff quote pull 3f2c... --out bungalow.yaml`,
	}

	cmd.AddCommand(newQuoteSaveCommand())
	cmd.AddCommand(newQuoteListCommand())
	cmd.AddCommand(newQuoteShowCommand())
	cmd.AddCommand(newQuotePullCommand())
	cmd.AddCommand(newQuoteDeleteCommand())
	cmd.AddCommand(newQuoteUseCommand())

	return cmd
}

func newQuoteSaveCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "save <quote-file>",
		Short: "Recompute a quote file and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := quotefile.Load(args[0])
			if err != nil {
				return err
			}
			if id != "" {
				state.ID = id
			}
			if region != "" {
				state.Region = region
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.send(&estimate.SaveQuoteCommand{State: state})
			if err != nil {
				return err
			}
			record := resp.(*estimate.SaveQuoteResponse).Record

			if h, err := config.NewUserConfigHandler(); err == nil {
				if err := h.SetCurrentQuote(record.ID); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to set current quote: %v\n", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved quote %s (%s)\n", record.ID, record.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "  Total: %s\n", formatMoney(record.Result.Summary.TotalAmount))
			printUnresolved(cmd.ErrOrStderr(), record.Result)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Quote ID (replaces an existing quote with the same ID)")
	return cmd
}

func newQuoteListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.send(&estimate.ListQuotesQuery{})
			if err != nil {
				return err
			}
			records := resp.(*estimate.QuoteListResponse).Records
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quotes saved.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTitle\tRegion\tTotal\tUpdated")
			fmt.Fprintln(w, "──\t─────\t──────\t─────\t───────")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Title, r.State.Region,
					formatMoney(r.Result.Summary.TotalAmount),
					r.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newQuoteShowCommand() *cobra.Command {
	var (
		xlsxPath string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:     "show [id]",
		Aliases: []string{"export"},
		Short:   "Show a saved quote's bill and summary",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveQuoteID(args)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.send(&estimate.GetQuoteQuery{ID: id})
			if err != nil {
				return err
			}
			record := resp.(*estimate.QuoteResponse).Record
			return renderResult(cmd, record.Title, record.Result, asJSON, xlsxPath)
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the bill of quantities to this Excel file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

func newQuotePullCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "pull [id]",
		Short: "Write a saved quote's inputs back to a file for editing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			id, err := resolveQuoteID(args)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.send(&estimate.GetQuoteQuery{ID: id})
			if err != nil {
				return err
			}
			if err := quotefile.Save(out, resp.(*estimate.QuoteResponse).Record.State); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Quote %s written to %s\n", id, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Destination file (.json or .yaml)")
	return cmd
}

func newQuoteDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := a.send(&estimate.DeleteQuoteCommand{ID: args[0]}); err != nil {
				return err
			}

			if h, err := config.NewUserConfigHandler(); err == nil {
				if userCfg, err := h.Load(); err == nil && userCfg.CurrentQuoteID == args[0] {
					if err := h.SetCurrentQuote(""); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to clear current quote: %v\n", err)
					}
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted quote %s\n", args[0])
			return nil
		},
	}
}

func newQuoteUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Make a quote the default for quote subcommands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := a.send(&estimate.GetQuoteQuery{ID: args[0]}); err != nil {
				return err
			}

			h, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := h.SetCurrentQuote(args[0]); err != nil {
				return fmt.Errorf("failed to set current quote: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Current quote set to %s\n", args[0])
			return nil
		},
	}
}
