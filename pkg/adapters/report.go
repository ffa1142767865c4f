package adapters

import (
	"github.com/de-tools/erate-atlas/pkg/models/api"
	"github.com/de-tools/erate-atlas/pkg/models/domain"
)

var rowKindNames = map[domain.RowKind]string{
	domain.RowYearHeader:    "year_header",
	domain.RowVendorSummary: "vendor_summary",
	domain.RowOrganization:  "organization",
	domain.RowItem:          "item",
	domain.RowPlaceholder:   "placeholder",
	domain.RowFooter:        "footer",
}

func MapOrganizationSummaryDomainToApi(org domain.OrganizationSummary) api.OrganizationSummary {
	return api.OrganizationSummary{
		Name:         org.Name,
		State:        org.State,
		FundingYears: org.FundingYears,
	}
}

func MapOrganizationSummariesDomainToApi(orgs []domain.OrganizationSummary) []api.OrganizationSummary {
	out := make([]api.OrganizationSummary, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, MapOrganizationSummaryDomainToApi(org))
	}
	return out
}

func MapRowDomainToApi(row domain.Row) api.Row {
	return api.Row{
		Kind:         rowKindNames[row.Kind],
		Year:         row.Year,
		Vendor:       row.Vendor,
		Organization: row.Organization,
		Label:        row.Label,
		Quantity:     row.Quantity,
		Amount:       row.Amount,
		AmountText:   row.AmountText,
		Rank:         row.Rank,
		ItemCount:    row.ItemCount,
		Share:        row.Share,
	}
}

func mapRows(rows []domain.Row) []api.Row {
	out := make([]api.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, MapRowDomainToApi(row))
	}
	return out
}

func MapHistoryReportDomainToApi(rep *domain.HistoryReport) api.HistoryReport {
	return api.HistoryReport{
		Organization:  rep.Organization,
		YearsWithData: rep.YearsWithData,
		GrandTotal:    rep.GrandTotal,
		CoercedCosts:  rep.CoercedCosts,
		Found:         rep.Found,
		Rows:          mapRows(rep.Rows),
	}
}

func MapStateReportDomainToApi(rep *domain.StateReport) api.StateReport {
	return api.StateReport{
		State:               rep.State,
		Year:                rep.Year,
		RecordCount:         rep.RecordCount,
		UniqueOrganizations: rep.UniqueOrganizations,
		GrandTotal:          rep.GrandTotal,
		CoercedCosts:        rep.CoercedCosts,
		Found:               rep.Found,
		Rows:                mapRows(rep.Rows),
	}
}
