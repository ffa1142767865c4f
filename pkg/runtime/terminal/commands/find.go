package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/erate-atlas/pkg/services/discovery"
	"github.com/spf13/cobra"
)

type findCmd struct {
	deps  *Deps
	state string
	limit int
}

// NewFindSchoolCmd searches for organizations matching a term, for use
// before an organization-scoped analysis.
func NewFindSchoolCmd(deps *Deps) *cobra.Command {
	fc := &findCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "find-school <search-term>",
		Short: "Search for schools/organizations matching the given term",
		Args:  cobra.ExactArgs(1),
		RunE:  fc.run,
	}

	cmd.Flags().StringVar(&fc.state, "state", "",
		`Filter results by state (2-letter code, e.g. "CA", "TX")`)
	cmd.Flags().IntVar(&fc.limit, "limit", 50,
		"Maximum number of search results to return")

	return cmd
}

func (fc *findCmd) run(cmd *cobra.Command, args []string) error {
	term := strings.TrimSpace(args[0])
	if term == "" {
		return fmt.Errorf("search term cannot be empty")
	}
	if fc.state != "" {
		if err := validateState(fc.state); err != nil {
			return err
		}
	}
	if err := validateLimit(fc.limit); err != nil {
		return err
	}

	resolver := discovery.NewResolver(fc.deps.newClient())
	results, err := resolver.Search(cmd.Context(), term, fc.state, fc.limit)
	if err != nil {
		return err
	}

	fc.deps.Reporter.SearchResults(term, results)
	return nil
}
