package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/takeoff-go/internal/adapters/catalogfile"
	"github.com/andrescamacho/takeoff-go/internal/application/estimate"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
)

// NewMaterialsCommand creates the materials command with subcommands
func NewMaterialsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Manage the material price catalog",
		Long: `Import and inspect the material catalog, set user price overrides
and maintain regional price multipliers.

Examples:
  takeoff materials import prices.xlsx
  takeoff materials list --category cement
  takeoff materials override --category cement --name Cement --price 780
  takeoff materials region --code MSA --name Mombasa --multiplier 1.1`,
	}

	cmd.AddCommand(newMaterialsImportCommand())
	cmd.AddCommand(newMaterialsListCommand())
	cmd.AddCommand(newMaterialsOverrideCommand())
	cmd.AddCommand(newMaterialsRegionCommand())

	return cmd
}

func newMaterialsImportCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import catalog entries from a CSV, Excel or JSON file",
		Long: `Import catalog entries. CSV and Excel files need category, name and
price columns; unit and variant are optional. Rows sharing a category
and name are merged, each variant row adding a variant price.

JSON files hold an array of entries as printed by 'materials list --json'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readCatalogFile(cmd, args[0], strict)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.send(&estimate.ImportMaterialsCommand{Entries: entries})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d catalog entries\n", resp.(*estimate.ImportMaterialsResponse).Imported)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any row is rejected")
	return cmd
}

func readCatalogFile(cmd *cobra.Command, path string, strict bool) ([]pricing.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var entries []pricing.Entry
		if err := json.NewDecoder(f).Decode(&entries); err != nil {
			return nil, fmt.Errorf("failed to decode catalog file: %w", err)
		}
		return entries, nil
	}

	result, err := catalogfile.Parse(filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	for _, rowErr := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %s\n", rowErr.Error())
	}
	if strict && len(result.Errors) > 0 {
		return nil, fmt.Errorf("%d row(s) rejected", len(result.Errors))
	}
	return result.Entries, nil
}

func newMaterialsListCommand() *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.send(&estimate.ListMaterialsQuery{Category: pricing.Category(strings.ToLower(category))})
			if err != nil {
				return err
			}
			entries := resp.(*estimate.ListMaterialsResponse).Entries

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No catalog entries.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Category\tName\tUnit\tPrice\tVariants")
			fmt.Fprintln(w, "────────\t────\t────\t─────\t────────")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", e.Category, e.Name, e.Unit, formatMoney(e.Price), len(e.Variants))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list this category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

func newMaterialsOverrideCommand() *cobra.Command {
	var override pricing.Override
	var category string

	cmd := &cobra.Command{
		Use:   "override",
		Short: "Set a user price that wins over the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			override.Category = pricing.Category(strings.ToLower(category))

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := a.send(&estimate.SetPriceOverrideCommand{Override: override}); err != nil {
				return err
			}
			label := override.Name
			if override.Variant != "" {
				label += " (" + override.Variant + ")"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s/%s now priced at %s\n", override.Category, label, formatMoney(override.Price))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Material category (required)")
	cmd.Flags().StringVar(&override.Name, "name", "", "Material name (required)")
	cmd.Flags().StringVar(&override.Variant, "variant", "", "Variant, e.g. a bar size or cable size")
	cmd.Flags().Float64Var(&override.Price, "price", 0, "Unit price (required)")
	cmd.MarkFlagRequired("category")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")
	return cmd
}

func newMaterialsRegionCommand() *cobra.Command {
	var r pricing.Region

	cmd := &cobra.Command{
		Use:   "region",
		Short: "Create or update a regional price multiplier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := a.send(&estimate.SaveRegionCommand{Region: r}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Region %s saved with multiplier %g\n", r.Code, r.Multiplier)
			return nil
		},
	}

	cmd.Flags().StringVar(&r.Code, "code", "", "Region code (required)")
	cmd.Flags().StringVar(&r.Name, "name", "", "Region name")
	cmd.Flags().Float64Var(&r.Multiplier, "multiplier", 1, "Price multiplier applied to catalog prices")
	cmd.MarkFlagRequired("code")
	return cmd
}
