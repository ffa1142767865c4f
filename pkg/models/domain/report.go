package domain

// RowKind tags the variants of a rendered report row.
type RowKind int

const (
	RowYearHeader RowKind = iota
	RowVendorSummary
	RowOrganization
	RowItem
	RowPlaceholder
	RowFooter
)

// Row is one display line of a rendered report. Which fields are populated
// depends on Kind; AmountText carries the thousands-separated money form so
// every output medium renders identical figures.
type Row struct {
	Kind         RowKind
	Year         string
	Vendor       string
	Organization string
	Label        string
	Quantity     string
	Amount       float64
	AmountText   string
	Rank         int
	ItemCount    int
	Share        float64
}

// HistoryReport is the rendered outcome of an organization-history run.
// Found is false when no year produced any network equipment records.
type HistoryReport struct {
	Organization  string
	YearsWithData []string
	GrandTotal    float64
	Thresholds    Thresholds
	Rows          []Row
	Items         []LineItem
	CoercedCosts  int
	Found         bool
}

// StateReport is the rendered outcome of a state/year run.
type StateReport struct {
	State               string
	Year                string
	RecordCount         int
	UniqueOrganizations int
	GrandTotal          float64
	Thresholds          Thresholds
	Rows                []Row
	Items               []LineItem
	CoercedCosts        int
	Found               bool
}
