package commands

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/de-tools/erate-atlas/pkg/runtime/terminal/console"
	"github.com/de-tools/erate-atlas/pkg/services/config"
	"github.com/de-tools/erate-atlas/pkg/store/usac"
)

// Deps carries what every subcommand needs: the runtime profile and the
// console reporter. Profile is populated by the root command before any
// subcommand runs.
type Deps struct {
	Profile  config.Profile
	Reporter *console.Reporter
}

func (d *Deps) newClient() *usac.Client {
	return usac.NewClient(usac.Settings{
		Endpoint:     d.Profile.Endpoint,
		QueryTimeout: d.Profile.QueryTimeout(),
		BulkTimeout:  d.Profile.BulkTimeout(),
	})
}

// validateState enforces the 2-letter state code rule shared by the
// discovery and state/year surfaces.
func validateState(state string) error {
	if len(state) != 2 || !unicode.IsLetter(rune(state[0])) || !unicode.IsLetter(rune(state[1])) {
		return fmt.Errorf("state must be a 2-letter code (e.g. \"CA\", \"TX\"), got %q", state)
	}
	return nil
}

func validateYear(year string) error {
	y, err := strconv.Atoi(year)
	if err != nil {
		return fmt.Errorf("year must be a valid integer, got %q", year)
	}
	if y < 2000 || y > 2030 {
		return fmt.Errorf("year must be between 2000 and 2030, got %d", y)
	}
	return nil
}

func validateThreshold(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s threshold must be non-negative", name)
	}
	return nil
}

func validateLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}
	return nil
}
