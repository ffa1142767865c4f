package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/erate-atlas/pkg/export"
	"github.com/de-tools/erate-atlas/pkg/models/domain"
	"github.com/de-tools/erate-atlas/pkg/services/analysis"
	"github.com/spf13/cobra"
)

type stateCmd struct {
	deps            *Deps
	limit           int
	schoolThreshold float64
	skuThreshold    float64
	saveCSV         bool
	saveJSON        bool
}

// NewStateCmd runs the whole-state vendor analysis for one funding year.
func NewStateCmd(deps *Deps) *cobra.Command {
	sc := &stateCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "state <state> <year>",
		Short: "Fetch and analyze E-Rate data for a state and funding year",
		Args:  cobra.ExactArgs(2),
		RunE:  sc.run,
	}

	cmd.Flags().IntVar(&sc.limit, "limit", deps.Profile.BulkFetchLimit,
		"Maximum number of records to fetch")
	cmd.Flags().Float64Var(&sc.schoolThreshold, "school-threshold", deps.Profile.SchoolThreshold,
		"Minimum per-organization spending to display")
	cmd.Flags().Float64Var(&sc.skuThreshold, "sku-threshold", deps.Profile.SKUThreshold,
		"Minimum line item cost to display individually")
	cmd.Flags().BoolVar(&sc.saveCSV, "save-csv", false, "Save results to a CSV file")
	cmd.Flags().BoolVar(&sc.saveJSON, "save-json", false, "Save results to a JSON file")

	return cmd
}

func (sc *stateCmd) run(cmd *cobra.Command, args []string) error {
	state := strings.ToUpper(strings.TrimSpace(args[0]))
	year := strings.TrimSpace(args[1])

	if !cmd.Flags().Changed("school-threshold") {
		sc.schoolThreshold = sc.deps.Profile.SchoolThreshold
	}
	if !cmd.Flags().Changed("sku-threshold") {
		sc.skuThreshold = sc.deps.Profile.SKUThreshold
	}
	if !cmd.Flags().Changed("limit") {
		sc.limit = sc.deps.Profile.BulkFetchLimit
	}

	if err := validateState(state); err != nil {
		return err
	}
	if err := validateYear(year); err != nil {
		return err
	}
	if err := validateThreshold("school", sc.schoolThreshold); err != nil {
		return err
	}
	if err := validateThreshold("SKU", sc.skuThreshold); err != nil {
		return err
	}
	if err := validateLimit(sc.limit); err != nil {
		return err
	}

	analyzer := analysis.NewStateAnalyzer(sc.deps.newClient(), sc.limit)
	rep, err := analyzer.Run(cmd.Context(), state, year, domain.Thresholds{
		School: sc.schoolThreshold,
		SKU:    sc.skuThreshold,
	})
	if err != nil {
		return err
	}
	if !rep.Found {
		sc.deps.Reporter.NoData(fmt.Sprintf("No data found for %s %s.", state, year))
		return nil
	}

	sc.deps.Reporter.StateReport(rep)

	if sc.saveCSV {
		path := export.StateCSVPath(state, year)
		if err := export.WriteCSV(path, rep.Items); err != nil {
			return fmt.Errorf("saving CSV: %w", err)
		}
		sc.deps.Reporter.Saved(path)
	}
	if sc.saveJSON {
		path := export.StateJSONPath(state, year)
		if err := export.WriteJSON(path, rep.Items); err != nil {
			return fmt.Errorf("saving JSON: %w", err)
		}
		sc.deps.Reporter.Saved(path)
	}
	return nil
}
