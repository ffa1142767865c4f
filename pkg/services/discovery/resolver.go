package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/erate-atlas/pkg/models/domain"
	"github.com/de-tools/erate-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// Searcher executes the substring organization search against the data
// source. The resolver owns the matching semantics the query implements.
type Searcher interface {
	SearchOrganizations(ctx context.Context, term, state string) ([]store.FundingRecord, error)
}

// Resolver produces the distinct set of organizations matching a free-text
// search term, with the funding years each appears in. Used for discovery
// before an organization-scoped run.
type Resolver struct {
	source Searcher
}

func NewResolver(source Searcher) *Resolver {
	return &Resolver{source: source}
}

// Search matches term against organization names case-insensitively, dedupes
// by name while accumulating funding years, and returns up to limit
// summaries ordered case-insensitively by name. Truncation happens after
// sorting so the cut is name-ordered, not arrival-ordered. An empty result
// is not an error.
func (r *Resolver) Search(
	ctx context.Context,
	term, stateFilter string,
	limit int,
) ([]domain.OrganizationSummary, error) {
	logger := zerolog.Ctx(ctx)

	records, err := r.source.SearchOrganizations(ctx, term, stateFilter)
	if err != nil {
		return nil, fmt.Errorf("organization search for %q: %w", term, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	type orgEntry struct {
		state string
		years map[string]struct{}
	}
	orgs := make(map[string]*orgEntry)

	for _, rec := range records {
		name := strings.TrimSpace(rec.Str(store.FieldOrganizationName))
		if name == "" {
			continue
		}
		entry, ok := orgs[name]
		if !ok {
			entry = &orgEntry{years: make(map[string]struct{})}
			orgs[name] = entry
		}
		if state := strings.TrimSpace(rec.Str(store.FieldState)); state != "" {
			entry.state = state
		}
		if year := rec.Str(store.FieldFundingYear); year != "" {
			entry.years[year] = struct{}{}
		}
	}

	results := make([]domain.OrganizationSummary, 0, len(orgs))
	for name, entry := range orgs {
		years := make([]string, 0, len(entry.years))
		for year := range entry.years {
			years = append(years, year)
		}
		sort.Strings(years)
		results = append(results, domain.OrganizationSummary{
			Name:         name,
			State:        entry.state,
			FundingYears: years,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return strings.ToUpper(results[i].Name) < strings.ToUpper(results[j].Name)
	})

	logger.Debug().
		Int("records", len(records)).
		Int("organizations", len(results)).
		Msg("organization search deduplicated")

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
