package analysis

import (
	"context"
	"sort"

	"github.com/de-tools/erate-atlas/pkg/models/domain"
	"github.com/de-tools/erate-atlas/pkg/models/store"
	"github.com/de-tools/erate-atlas/pkg/services/normalize"
	"github.com/de-tools/erate-atlas/pkg/services/report"
	"github.com/de-tools/erate-atlas/pkg/services/vendor"
	"github.com/rs/zerolog"
)

// HistorySource retrieves line item rows for one organization and funding
// year, including the exact-then-partial match fallback.
type HistorySource interface {
	FetchOrganizationYear(ctx context.Context, org, year string, limit int) ([]store.FundingRecord, error)
}

// HistoryAnalyzer runs the organization-history workflow: one fetch per
// funding year, vendor-filtered normalization, merged aggregation and a
// rendered report. Fetch failures are non-fatal per year; the run continues
// with the remaining years.
type HistoryAnalyzer struct {
	source     HistorySource
	years      []string
	fetchLimit int
}

func NewHistoryAnalyzer(source HistorySource, years []string, fetchLimit int) *HistoryAnalyzer {
	return &HistoryAnalyzer{source: source, years: years, fetchLimit: fetchLimit}
}

func (a *HistoryAnalyzer) Run(
	ctx context.Context,
	organization string,
	thresholds domain.Thresholds,
) (*domain.HistoryReport, error) {
	logger := zerolog.Ctx(ctx)

	// the organization workflow restricts form versions in the source query,
	// so normalization only applies vendor targeting
	normalizer := normalize.NewNormalizer(vendor.NewTaxonomy(domain.TaxonomyStrict))

	node := domain.NewAggregationNode()
	var yearsWithData []string
	var items []domain.LineItem

	for _, year := range a.years {
		records, err := a.source.FetchOrganizationYear(ctx, organization, year, a.fetchLimit)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("year", year).
				Msg("skipping year after fetch failure")
			continue
		}
		if len(records) == 0 {
			continue
		}

		yearItems := normalizer.NormalizeAll(records, normalize.Filters{})
		if len(yearItems) == 0 {
			continue
		}

		yearsWithData = append(yearsWithData, year)
		items = append(items, yearItems...)
		node = report.Merge(node, report.Aggregate(yearItems))

		logger.Info().
			Str("year", year).
			Int("records", len(records)).
			Int("items", len(yearItems)).
			Msg("year processed")
	}

	sort.Strings(yearsWithData)

	result := &domain.HistoryReport{
		Organization:  organization,
		YearsWithData: yearsWithData,
		GrandTotal:    node.GrandTotal,
		Thresholds:    thresholds,
		Items:         items,
		CoercedCosts:  normalizer.CoercedCosts(),
		Found:         len(items) > 0,
	}
	if result.Found {
		result.Rows = report.NewRenderer(thresholds).History(node)
	}
	return result, nil
}
