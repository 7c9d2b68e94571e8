package cli

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
	"github.com/andrescamacho/takeoff-go/internal/infrastructure/config"
)

// defaultRegion picks the region for quotes that name none.
// Priority: user config default > config file / environment
func defaultRegion(cfg *config.Config) string {
	if h, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := h.Load(); err == nil && userCfg.DefaultRegion != "" {
			return userCfg.DefaultRegion
		}
	}
	return cfg.Pricing.Region
}

// resolveQuoteID returns the ID argument, or the current quote from user config
func resolveQuoteID(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	h, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no quote specified and failed to load user config: %w", err)
	}
	userCfg, err := h.Load()
	if err != nil {
		return "", fmt.Errorf("no quote specified and failed to load user config: %w", err)
	}
	if userCfg.CurrentQuoteID != "" {
		return userCfg.CurrentQuoteID, nil
	}

	return "", fmt.Errorf("no quote specified: pass a quote ID, or select one with 'takeoff quote use <id>'")
}

// formatMoney renders an amount with thousands separators and two decimals
func formatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}

// formatQuantity trims trailing zeros off a quantity
func formatQuantity(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// printBOQ writes the bill as an aligned table
func printBOQ(w io.Writer, boq quote.BOQ) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Item\tDescription\tUnit\tQty\tRate\tAmount")
	fmt.Fprintln(tw, "────\t───────────\t────\t───\t────\t──────")
	for _, it := range boq.Items() {
		if it.IsHeader {
			fmt.Fprintf(tw, "%s\t%s\t\t\t\t\n", it.ItemNo, strings.ToUpper(it.Description))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ItemNo, it.Description, it.Unit,
			formatQuantity(it.Quantity), formatMoney(it.Rate), formatMoney(it.Amount))
	}
	tw.Flush()
}

// printSummary writes the financial summary lines
func printSummary(w io.Writer, s quote.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	lines := []struct {
		label string
		value float64
	}{
		{"Materials", s.MaterialsCost},
		{"Labour", s.LabourCost},
		{"Preliminaries (incl. permit)", s.PreliminariesTotal},
		{"Subcontractors", s.SubcontractorTotal},
		{"Subtotal", s.Subtotal},
		{"Overhead", s.OverheadAmount},
		{"Contingency", s.ContingencyAmount},
		{"Profit", s.ProfitAmount},
	}
	for _, l := range lines {
		fmt.Fprintf(tw, "%s:\t%s\t\n", l.label, formatMoney(l.value))
	}
	fmt.Fprintf(tw, "TOTAL:\t%s\t\n", formatMoney(s.TotalAmount))
	tw.Flush()
}

// printUnresolved lists the items priced at zero
func printUnresolved(w io.Writer, r quote.Result) {
	if len(r.UnresolvedPrices) == 0 {
		return
	}
	fmt.Fprintf(w, "\nWarning: %d item(s) have no price and were costed at 0:\n", len(r.UnresolvedPrices))
	for _, l := range r.UnresolvedPrices {
		fmt.Fprintf(w, "  - %s\n", l)
	}
}

// maskPassword hides the password in a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
