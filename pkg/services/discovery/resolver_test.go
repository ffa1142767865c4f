package discovery

import (
	"context"
	"fmt"
	"testing"

	"github.com/de-tools/erate-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	records []store.FundingRecord
	err     error
	term    string
	state   string
}

func (f *fakeSearcher) SearchOrganizations(
	_ context.Context,
	term, state string,
) ([]store.FundingRecord, error) {
	f.term = term
	f.state = state
	return f.records, f.err
}

func rec(name, state, year string) store.FundingRecord {
	return store.FundingRecord{
		store.FieldOrganizationName: name,
		store.FieldState:            state,
		store.FieldFundingYear:      year,
	}
}

func TestResolver_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("dedupes by name and accumulates years", func(t *testing.T) {
		source := &fakeSearcher{records: []store.FundingRecord{
			rec("PIEDMONT UNIFIED", "CA", "2021"),
			rec("PIEDMONT UNIFIED", "", "2023"),
			rec("PIEDMONT CITY SCHOOLS", "AL", "2022"),
		}}
		results, err := NewResolver(source).Search(ctx, "PIEDMONT", "", 50)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, "PIEDMONT CITY SCHOOLS", results[0].Name)
		assert.Equal(t, "PIEDMONT UNIFIED", results[1].Name)
		assert.Equal(t, "CA", results[1].State)
		assert.Equal(t, []string{"2021", "2023"}, results[1].FundingYears)
	})

	t.Run("last seen non-empty state wins", func(t *testing.T) {
		source := &fakeSearcher{records: []store.FundingRecord{
			rec("ACME", "OK", "2020"),
			rec("ACME", "", "2021"),
			rec("ACME", "TX", "2022"),
		}}
		results, err := NewResolver(source).Search(ctx, "ACME", "", 50)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "TX", results[0].State)
	})

	t.Run("truncates after sorting", func(t *testing.T) {
		var records []store.FundingRecord
		// arrival order is reverse-alphabetical
		for i := 9; i >= 0; i-- {
			records = append(records, rec(fmt.Sprintf("SCHOOL %d", i), "OK", "2024"))
		}
		source := &fakeSearcher{records: records}
		results, err := NewResolver(source).Search(ctx, "SCHOOL", "", 3)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "SCHOOL 0", results[0].Name)
		assert.Equal(t, "SCHOOL 2", results[2].Name)
	})

	t.Run("skips blank organization names", func(t *testing.T) {
		source := &fakeSearcher{records: []store.FundingRecord{
			rec("  ", "OK", "2024"),
			rec("REAL SCHOOL", "OK", "2024"),
		}}
		results, err := NewResolver(source).Search(ctx, "SCHOOL", "OK", 50)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "OK", source.state)
	})

	t.Run("empty match list is not an error", func(t *testing.T) {
		results, err := NewResolver(&fakeSearcher{}).Search(ctx, "NOWHERE", "", 50)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
