package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/de-tools/erate-atlas/pkg/models/domain"
	"github.com/de-tools/erate-atlas/pkg/services/report"
)

const lineWidth = 80

// Reporter formats rendered reports and search results for the terminal.
// All decoration goes through the injected Styler, so the same layout can be
// written plain to a file or a test buffer.
type Reporter struct {
	writer io.Writer
	style  report.Styler
}

func NewReporter(writer io.Writer, style report.Styler) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if style == nil {
		style = report.PlainStyler{}
	}
	return &Reporter{writer: writer, style: style}
}

func (r *Reporter) printf(format string, args ...any) {
	fmt.Fprintf(r.writer, format, args...)
}

func (r *Reporter) rule(ch string) {
	r.printf("%s\n", r.style.Stylize(report.RoleEmphasis, strings.Repeat(ch, lineWidth)))
}

// HistoryReport prints the organization-history report.
func (r *Reporter) HistoryReport(rep *domain.HistoryReport) {
	r.printf("\n")
	r.rule("=")
	r.printf("%s\n", r.style.Stylize(report.RoleHeader, strings.ToUpper(rep.Organization)))
	r.printf("%s\n", r.style.Stylize(report.RoleHeader, "E-RATE NETWORK EQUIPMENT HISTORY"))
	r.rule("=")

	r.printf("%s %s\n",
		r.style.Stylize(report.RoleLabel, "Years with Data:"),
		r.style.Stylize(report.RoleEmphasis, strings.Join(rep.YearsWithData, ", ")))
	r.printf("%s %s\n",
		r.style.Stylize(report.RoleLabel, "Total Funding:"),
		r.style.Stylize(report.RoleMoney, report.MoneyTotal(rep.GrandTotal)))
	r.printf("%s %s\n\n",
		r.style.Stylize(report.RoleLabel, "SKU Threshold:"),
		r.style.Stylize(report.RoleWarning, report.MoneyItem(rep.Thresholds.SKU)))

	for _, row := range rep.Rows {
		switch row.Kind {
		case domain.RowYearHeader:
			r.printf("%s\n", r.style.Stylize(report.RoleHeader, row.Year))
		case domain.RowVendorSummary:
			r.printf("  - %s %s\n",
				r.style.Stylize(report.RoleVendor, row.Vendor),
				r.style.Stylize(report.RoleMoney, row.AmountText))
		case domain.RowItem:
			r.itemRow(row)
		case domain.RowPlaceholder:
			r.printf("        %s\n\n", r.style.Stylize(report.RoleSKU, "* "+row.Label))
		case domain.RowFooter:
			r.footer(row, rep.CoercedCosts)
		}
	}
}

// StateReport prints the state/year vendor analysis summary.
func (r *Reporter) StateReport(rep *domain.StateReport) {
	r.printf("\n")
	r.rule("=")
	title := fmt.Sprintf("%s E-RATE %s - VENDOR ANALYSIS SUMMARY", strings.ToUpper(rep.State), rep.Year)
	r.printf("%s\n", r.style.Stylize(report.RoleHeader, title))
	r.rule("=")

	r.printf("%s %s\n",
		r.style.Stylize(report.RoleLabel, "Total Records:"),
		r.style.Stylize(report.RoleEmphasis, fmt.Sprintf("%d", rep.RecordCount)))
	r.printf("%s %s\n",
		r.style.Stylize(report.RoleLabel, "Total Funding:"),
		r.style.Stylize(report.RoleMoney, report.MoneyTotal(rep.GrandTotal)))
	r.printf("%s %s\n",
		r.style.Stylize(report.RoleLabel, "Unique Organizations:"),
		r.style.Stylize(report.RoleEmphasis, fmt.Sprintf("%d", rep.UniqueOrganizations)))
	r.printf("%s %s\n",
		r.style.Stylize(report.RoleLabel, "School Threshold:"),
		r.style.Stylize(report.RoleWarning, report.MoneyItem(rep.Thresholds.School)))
	r.printf("%s %s\n\n",
		r.style.Stylize(report.RoleLabel, "SKU Threshold:"),
		r.style.Stylize(report.RoleWarning, report.MoneyItem(rep.Thresholds.SKU)))

	r.printf("%s\n\n", r.style.Stylize(report.RoleHeader, "VENDOR BREAKDOWN:"))

	for _, row := range rep.Rows {
		switch row.Kind {
		case domain.RowVendorSummary:
			r.printf("%s %s %s - %s items\n",
				r.style.Stylize(report.RoleVendor, fmt.Sprintf("#%2d  %-18s", row.Rank, row.Vendor)),
				r.style.Stylize(report.RoleMoney, fmt.Sprintf("%14s", row.AmountText)),
				r.style.Stylize(report.RoleLabel, fmt.Sprintf("(%5.1f%%)", row.Share)),
				r.style.Stylize(report.RoleEmphasis, fmt.Sprintf("%4d", row.ItemCount)))
		case domain.RowOrganization:
			r.printf("    %s %s\n",
				r.style.Stylize(report.RoleSchool, fmt.Sprintf("> %-50s", row.Organization)),
				r.style.Stylize(report.RoleMoney, row.AmountText))
		case domain.RowItem:
			r.itemRow(row)
		case domain.RowPlaceholder:
			r.printf("    %s\n\n", r.style.Stylize(report.RoleSKU, row.Label))
		case domain.RowFooter:
			r.footer(row, rep.CoercedCosts)
		}
	}
}

func (r *Reporter) itemRow(row domain.Row) {
	r.printf("        %s %s %s\n",
		r.style.Stylize(report.RoleSKU, fmt.Sprintf("* %-45s", row.Label)),
		r.style.Stylize(report.RoleLabel, fmt.Sprintf("%8s", row.Quantity)),
		r.style.Stylize(report.RoleMoney, fmt.Sprintf("%11s", row.AmountText)))
}

func (r *Reporter) footer(row domain.Row, coercedCosts int) {
	r.printf("\n")
	r.rule("-")
	if coercedCosts > 0 {
		r.printf("%s\n", r.style.Stylize(report.RoleWarning,
			fmt.Sprintf("Note: %d records had unparseable cost values counted as $0", coercedCosts)))
	}
	r.printf("%s %s\n",
		r.style.Stylize(report.RoleLabel, "Analysis completed at:"),
		time.Now().Format("2006-01-02 15:04:05"))
	r.printf("%s %s\n",
		r.style.Stylize(report.RoleLabel, "Data source:"),
		row.Label)
}

// SearchResults prints discovery matches with their funding years.
func (r *Reporter) SearchResults(term string, results []domain.OrganizationSummary) {
	if len(results) == 0 {
		r.printf("No schools found matching %q\n", term)
		return
	}

	r.printf("\n")
	r.rule("=")
	r.printf("%s\n", r.style.Stylize(report.RoleHeader,
		fmt.Sprintf("SCHOOL SEARCH RESULTS FOR %q", strings.ToUpper(term))))
	r.rule("=")
	r.printf("Found %s matching organizations:\n\n",
		r.style.Stylize(report.RoleEmphasis, fmt.Sprintf("%d", len(results))))

	for i, org := range results {
		state := "[State Unknown]"
		if org.State != "" {
			state = "[" + org.State + "]"
		}
		r.printf("%s %s %s\n",
			r.style.Stylize(report.RoleLabel, fmt.Sprintf("%2d.", i+1)),
			r.style.Stylize(report.RoleSchool, org.Name),
			r.style.Stylize(report.RoleWarning, state))
		r.printf("     %s %s\n\n",
			r.style.Stylize(report.RoleLabel, "E-Rate funding years:"),
			r.style.Stylize(report.RoleWarning, yearsDisplay(org.FundingYears)))
	}

	r.rule("-")
	r.printf("%s Copy the exact organization name from above and run:\n",
		r.style.Stylize(report.RoleLabel, "Usage:"))
	r.printf("%s\n", r.style.Stylize(report.RoleMoney, `erate history "EXACT_ORGANIZATION_NAME"`))
}

// yearsDisplay compresses long year lists into a "(N years: min-max)" form.
func yearsDisplay(years []string) string {
	if len(years) == 0 {
		return "(no data found)"
	}
	full := "(" + strings.Join(years, ", ") + ")"
	if len(full) > 30 {
		return fmt.Sprintf("(%d years: %s-%s)", len(years), years[0], years[len(years)-1])
	}
	return full
}

// NoData prints the normal terminal state for an empty run.
func (r *Reporter) NoData(message string) {
	r.printf("%s\n", r.style.Stylize(report.RoleWarning, message))
}

// Saved reports a completed export.
func (r *Reporter) Saved(path string) {
	r.printf("Data saved to %s\n", path)
}
