package usac

import (
	"fmt"
	"strings"
)

// escape doubles single quotes so user input survives the SoQL string
// literal.
func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func searchWhere(term, state string) string {
	clause := fmt.Sprintf("upper(organization_name) like upper('%%%s%%')", escape(term))
	if state != "" {
		clause += fmt.Sprintf(" and upper(state)='%s'", escape(strings.ToUpper(state)))
	}
	return clause
}

func exactOrganizationWhere(org, year string) string {
	return fmt.Sprintf(
		"funding_year='%s' AND form_version='Current' AND upper(organization_name)=upper('%s')",
		escape(year), escape(org))
}

func partialOrganizationWhere(org, year string) string {
	return fmt.Sprintf(
		"funding_year='%s' AND form_version='Current' AND upper(organization_name) LIKE upper('%%%s%%')",
		escape(year), escape(org))
}

// stateYearWhere carries no form-version condition; the state/year workflow
// filters form versions during normalization instead.
func stateYearWhere(state, year string) string {
	return fmt.Sprintf("funding_year='%s' AND state='%s'", escape(year), escape(state))
}
