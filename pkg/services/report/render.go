package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/erate-atlas/pkg/models/domain"
)

const (
	// labelWidth is the display budget for a model/product label, ellipsis
	// included.
	labelWidth = 45
	truncAt    = 42
	// minPrefixRoom is the minimum usable model characters that must remain
	// after an application-number prefix; below it the bare model wins.
	minPrefixRoom = 10

	dataSourceNote = "USAC Open Data API - FRN Line Items"
)

// Renderer walks an aggregation tree in deterministic order and produces the
// threshold-filtered row sequence for one report variant.
type Renderer struct {
	thresholds domain.Thresholds
}

func NewRenderer(thresholds domain.Thresholds) *Renderer {
	return &Renderer{thresholds: thresholds}
}

// History renders the organization-history variant: years ascending, vendors
// by descending total within each year, drill-down items above the SKU
// threshold by descending cost. A vendor with no item above the threshold
// still appears, with a placeholder row.
func (r *Renderer) History(node *domain.AggregationNode) []domain.Row {
	var rows []domain.Row

	for _, year := range sortedYears(node) {
		rows = append(rows, domain.Row{Kind: domain.RowYearHeader, Year: year})

		for _, vendor := range vendorsByTotal(node.Years[year]) {
			rows = append(rows, domain.Row{
				Kind:       domain.RowVendorSummary,
				Year:       year,
				Vendor:     vendor.Vendor.Display,
				Amount:     vendor.Total,
				AmountText: MoneyTotal(vendor.Total),
				ItemCount:  vendor.ItemCount,
			})

			items := itemsAbove(vendor, r.thresholds.SKU)
			if len(items) == 0 {
				rows = append(rows, domain.Row{
					Kind:   domain.RowPlaceholder,
					Year:   year,
					Vendor: vendor.Vendor.Display,
					Label:  fmt.Sprintf("(no single line items over %s)", MoneyItem(r.thresholds.SKU)),
				})
				continue
			}
			for _, item := range items {
				rows = append(rows, domain.Row{
					Kind:       domain.RowItem,
					Year:       year,
					Vendor:     vendor.Vendor.Display,
					Label:      itemLabel(item.Model, item.ApplicationNumber),
					Quantity:   quantityDisplay(item.Quantity),
					Amount:     item.Cost,
					AmountText: MoneyItem(item.Cost),
				})
			}
		}
	}

	return append(rows, domain.Row{Kind: domain.RowFooter, Label: dataSourceNote})
}

// StateYear renders the state/year variant: vendors ranked by descending
// total with funding share, organizations above the school threshold under
// each vendor, and their items above the SKU threshold. Vendors and shown
// organizations never silently disappear; empty groups render a placeholder.
func (r *Renderer) StateYear(node *domain.AggregationNode) []domain.Row {
	var rows []domain.Row

	for _, year := range sortedYears(node) {
		rank := 0
		for _, vendor := range vendorsByTotal(node.Years[year]) {
			rank++
			share := 0.0
			if node.GrandTotal > 0 {
				share = vendor.Total / node.GrandTotal * 100
			}
			rows = append(rows, domain.Row{
				Kind:       domain.RowVendorSummary,
				Year:       year,
				Vendor:     vendor.Vendor.Display,
				Amount:     vendor.Total,
				AmountText: MoneyTotal(vendor.Total),
				ItemCount:  vendor.ItemCount,
				Rank:       rank,
				Share:      share,
			})

			orgs := organizationsAbove(vendor, r.thresholds.School)
			if len(orgs) == 0 {
				rows = append(rows, domain.Row{
					Kind:   domain.RowPlaceholder,
					Year:   year,
					Vendor: vendor.Vendor.Display,
					Label:  fmt.Sprintf("(no organizations above %s threshold)", MoneyItem(r.thresholds.School)),
				})
				continue
			}

			for _, org := range orgs {
				rows = append(rows, domain.Row{
					Kind:         domain.RowOrganization,
					Year:         year,
					Vendor:       vendor.Vendor.Display,
					Organization: org.name,
					Amount:       org.totals.Total,
					AmountText:   MoneyTotal(org.totals.Total),
				})

				items := orgItemsAbove(org.totals, r.thresholds.SKU)
				if len(items) == 0 {
					rows = append(rows, domain.Row{
						Kind:         domain.RowPlaceholder,
						Year:         year,
						Vendor:       vendor.Vendor.Display,
						Organization: org.name,
						Label:        fmt.Sprintf("(no line items above %s)", MoneyItem(r.thresholds.SKU)),
					})
					continue
				}
				for _, item := range items {
					rows = append(rows, domain.Row{
						Kind:         domain.RowItem,
						Year:         year,
						Vendor:       vendor.Vendor.Display,
						Organization: org.name,
						Label:        truncateLabel(item.Model),
						Quantity:     quantityDisplay(item.Quantity),
						Amount:       item.Cost,
						AmountText:   MoneyItem(item.Cost),
					})
				}
			}
		}
	}

	return append(rows, domain.Row{Kind: domain.RowFooter, Label: dataSourceNote})
}

func sortedYears(node *domain.AggregationNode) []string {
	years := make([]string, 0, len(node.Years))
	for year := range node.Years {
		years = append(years, year)
	}
	sort.Strings(years)
	return years
}

// vendorsByTotal orders vendors by descending total cost, ties broken by
// display name ascending so equal totals render in a stable order.
func vendorsByTotal(year *domain.YearTotals) []*domain.VendorTotals {
	vendors := make([]*domain.VendorTotals, 0, len(year.Vendors))
	for _, v := range year.Vendors {
		vendors = append(vendors, v)
	}
	sort.Slice(vendors, func(i, j int) bool {
		if vendors[i].Total != vendors[j].Total {
			return vendors[i].Total > vendors[j].Total
		}
		return vendors[i].Vendor.Display < vendors[j].Vendor.Display
	})
	return vendors
}

type namedOrg struct {
	name   string
	totals *domain.OrganizationTotals
}

func organizationsAbove(vendor *domain.VendorTotals, threshold float64) []namedOrg {
	var orgs []namedOrg
	for name, totals := range vendor.Organizations {
		if totals.Total >= threshold {
			orgs = append(orgs, namedOrg{name: name, totals: totals})
		}
	}
	sort.Slice(orgs, func(i, j int) bool {
		if orgs[i].totals.Total != orgs[j].totals.Total {
			return orgs[i].totals.Total > orgs[j].totals.Total
		}
		return orgs[i].name < orgs[j].name
	})
	return orgs
}

// itemsAbove collects a vendor's items across organizations, keeping only
// those at or over the threshold, sorted by descending cost. Organizations
// are visited in name order so equal-cost items keep a stable order.
func itemsAbove(vendor *domain.VendorTotals, threshold float64) []domain.LineItem {
	names := make([]string, 0, len(vendor.Organizations))
	for name := range vendor.Organizations {
		names = append(names, name)
	}
	sort.Strings(names)

	var items []domain.LineItem
	for _, name := range names {
		items = append(items, orgItemsAbove(vendor.Organizations[name], threshold)...)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Cost > items[j].Cost
	})
	return items
}

func orgItemsAbove(org *domain.OrganizationTotals, threshold float64) []domain.LineItem {
	var items []domain.LineItem
	for _, item := range org.Items {
		if item.Cost >= threshold {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Cost > items[j].Cost
	})
	return items
}

// truncateLabel cuts a label longer than the display budget down to 42
// characters plus an ellipsis marker.
func truncateLabel(label string) string {
	if len(label) > labelWidth {
		return label[:truncAt] + "..."
	}
	return label
}

// itemLabel decorates a model label with its application number when the
// model string carries no identifying parenthetical of its own. The combined
// string is re-truncated to the same budget; when the prefix would leave
// fewer than minPrefixRoom usable characters the bare model wins.
func itemLabel(model, appNumber string) string {
	label := truncateLabel(model)
	if strings.Contains(model, "(") && strings.Contains(model, ")") {
		return label
	}

	prefix := fmt.Sprintf("(App %s) ", appNumber)
	if len(prefix)+len(label) <= labelWidth {
		return prefix + label
	}

	room := labelWidth - len(prefix) - 3
	if room > minPrefixRoom {
		return prefix + label[:room] + "..."
	}
	if len(label) > truncAt {
		label = label[:truncAt]
	}
	return label + "..."
}

// quantityDisplay keeps the literal quantity when present and non-zero;
// quantities are never coerced to 0 for display.
func quantityDisplay(quantity string) string {
	if quantity != "" && quantity != "0" {
		return "Qty " + quantity
	}
	return "Qty N/A"
}
