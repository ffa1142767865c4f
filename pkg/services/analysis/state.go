package analysis

import (
	"context"
	"fmt"

	"github.com/de-tools/erate-atlas/pkg/models/domain"
	"github.com/de-tools/erate-atlas/pkg/models/store"
	"github.com/de-tools/erate-atlas/pkg/services/normalize"
	"github.com/de-tools/erate-atlas/pkg/services/report"
	"github.com/de-tools/erate-atlas/pkg/services/vendor"
	"github.com/rs/zerolog"
)

// StateSource retrieves every line item row filed for a state and funding
// year in one bulk pull.
type StateSource interface {
	FetchStateYear(ctx context.Context, state, year string, limit int) ([]store.FundingRecord, error)
}

// StateAnalyzer runs the state/year workflow: one bulk fetch, current-form
// and vendor filtering, aggregation and a rendered report. A fetch failure
// is fatal for the run.
type StateAnalyzer struct {
	source     StateSource
	fetchLimit int
}

func NewStateAnalyzer(source StateSource, fetchLimit int) *StateAnalyzer {
	return &StateAnalyzer{source: source, fetchLimit: fetchLimit}
}

func (a *StateAnalyzer) Run(
	ctx context.Context,
	state, year string,
	thresholds domain.Thresholds,
) (*domain.StateReport, error) {
	logger := zerolog.Ctx(ctx)

	records, err := a.source.FetchStateYear(ctx, state, year, a.fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("state/year fetch for %s %s: %w", state, year, err)
	}

	logger.Info().
		Str("state", state).
		Str("year", year).
		Int("records", len(records)).
		Msg("state data fetched")

	// whole-dataset scans keep unmapped vendors as-is
	normalizer := normalize.NewNormalizer(vendor.NewTaxonomy(domain.TaxonomyPermissive))
	items := normalizer.NormalizeAll(records, normalize.Filters{RequireCurrentForm: true})

	node := report.Aggregate(items)

	orgs := make(map[string]struct{})
	for _, item := range items {
		orgs[item.OrganizationName] = struct{}{}
	}

	result := &domain.StateReport{
		State:               state,
		Year:                year,
		RecordCount:         len(items),
		UniqueOrganizations: len(orgs),
		GrandTotal:          node.GrandTotal,
		Thresholds:          thresholds,
		Items:               items,
		CoercedCosts:        normalizer.CoercedCosts(),
		Found:               len(items) > 0,
	}
	if result.Found {
		result.Rows = report.NewRenderer(thresholds).StateYear(node)
	}
	return result, nil
}
