package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/erate-atlas/pkg/export"
	"github.com/de-tools/erate-atlas/pkg/models/domain"
	"github.com/de-tools/erate-atlas/pkg/services/analysis"
	"github.com/spf13/cobra"
)

type historyCmd struct {
	deps         *Deps
	skuThreshold float64
	limit        int
	saveCSV      bool
}

// NewHistoryCmd analyzes one organization's funding history across the
// configured year range.
func NewHistoryCmd(deps *Deps) *cobra.Command {
	hc := &historyCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "history <organization>",
		Short: "Analyze E-Rate network equipment funding history for one organization",
		Args:  cobra.ExactArgs(1),
		RunE:  hc.run,
	}

	cmd.Flags().Float64Var(&hc.skuThreshold, "sku-threshold", deps.Profile.SKUThreshold,
		"Minimum line item cost to display individually")
	cmd.Flags().IntVar(&hc.limit, "limit", deps.Profile.FetchLimit,
		"Maximum number of records to fetch per year")
	cmd.Flags().BoolVar(&hc.saveCSV, "save-csv", false,
		"Save the filtered records to a CSV file")

	return cmd
}

func (hc *historyCmd) run(cmd *cobra.Command, args []string) error {
	organization := strings.TrimSpace(args[0])
	if organization == "" {
		return fmt.Errorf("organization name cannot be empty")
	}

	// a profile file loaded via --config replaces the built-in defaults, so
	// flags the user did not set follow the loaded profile
	if !cmd.Flags().Changed("sku-threshold") {
		hc.skuThreshold = hc.deps.Profile.SKUThreshold
	}
	if !cmd.Flags().Changed("limit") {
		hc.limit = hc.deps.Profile.FetchLimit
	}
	if err := validateThreshold("SKU", hc.skuThreshold); err != nil {
		return err
	}
	if err := validateLimit(hc.limit); err != nil {
		return err
	}

	ctx := cmd.Context()
	analyzer := analysis.NewHistoryAnalyzer(hc.deps.newClient(), hc.deps.Profile.Years(), hc.limit)

	rep, err := analyzer.Run(ctx, organization, domain.Thresholds{SKU: hc.skuThreshold})
	if err != nil {
		return err
	}
	if !rep.Found {
		hc.deps.Reporter.NoData(fmt.Sprintf(
			"No network equipment E-Rate data found for %q in any year.\n"+
				"Tip: try `erate find-school %q` to locate the exact organization name.",
			organization, firstWord(organization)))
		return nil
	}

	hc.deps.Reporter.HistoryReport(rep)

	if hc.saveCSV {
		path := export.HistoryCSVPath(organization)
		if err := export.WriteCSV(path, rep.Items); err != nil {
			return fmt.Errorf("saving CSV: %w", err)
		}
		hc.deps.Reporter.Saved(path)
	}
	return nil
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return s
}
