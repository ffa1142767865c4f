package api

// OrganizationSummary is one discovery search hit.
type OrganizationSummary struct {
	Name         string   `json:"name"`
	State        string   `json:"state,omitempty"`
	FundingYears []string `json:"funding_years,omitempty"`
}

// Row is one display line of a report. Kind names the variant; the
// remaining fields are populated per kind.
type Row struct {
	Kind         string  `json:"kind"`
	Year         string  `json:"year,omitempty"`
	Vendor       string  `json:"vendor,omitempty"`
	Organization string  `json:"organization,omitempty"`
	Label        string  `json:"label,omitempty"`
	Quantity     string  `json:"quantity,omitempty"`
	Amount       float64 `json:"amount,omitempty"`
	AmountText   string  `json:"amount_text,omitempty"`
	Rank         int     `json:"rank,omitempty"`
	ItemCount    int     `json:"item_count,omitempty"`
	Share        float64 `json:"share,omitempty"`
}

type HistoryReport struct {
	Organization  string   `json:"organization"`
	YearsWithData []string `json:"years_with_data"`
	GrandTotal    float64  `json:"grand_total"`
	CoercedCosts  int      `json:"coerced_costs,omitempty"`
	Found         bool     `json:"found"`
	Rows          []Row    `json:"rows"`
}

type StateReport struct {
	State               string  `json:"state"`
	Year                string  `json:"year"`
	RecordCount         int     `json:"record_count"`
	UniqueOrganizations int     `json:"unique_organizations"`
	GrandTotal          float64 `json:"grand_total"`
	CoercedCosts        int     `json:"coerced_costs,omitempty"`
	Found               bool    `json:"found"`
	Rows                []Row   `json:"rows"`
}
