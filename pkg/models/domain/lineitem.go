package domain

// LineItem is one funded equipment purchase record after normalization.
// Created only by the normalizer and treated as immutable afterwards.
// Cost is zero when the source cost field was absent or non-numeric.
type LineItem struct {
	FundingYear       string
	OrganizationName  string
	ManufacturerRaw   string
	Vendor            CanonicalVendor
	ProductName       string
	Model             string
	Quantity          string
	Cost              float64
	ApplicationNumber string
}

// OrganizationSummary describes one organization found by a discovery search,
// with the funding years it appears in.
type OrganizationSummary struct {
	Name         string
	State        string
	FundingYears []string
}

// Thresholds hold the display cut-offs for report rendering, both >= 0.
// School is the minimum per-organization total within a vendor, SKU the
// minimum per-line-item cost.
type Thresholds struct {
	School float64
	SKU    float64
}
