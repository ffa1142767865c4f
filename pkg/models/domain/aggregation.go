package domain

// AggregationNode is the root of the spending tree built from a set of line
// items: Year -> Vendor -> Organization -> {total, items}. Totals at every
// level equal the sum of line item costs underneath them. The structure
// carries no presentation order; traversal order is decided at render time.
type AggregationNode struct {
	GrandTotal float64
	ItemCount  int
	Years      map[string]*YearTotals
}

type YearTotals struct {
	Total   float64
	Vendors map[string]*VendorTotals
}

type VendorTotals struct {
	Vendor        CanonicalVendor
	Total         float64
	ItemCount     int
	Organizations map[string]*OrganizationTotals
}

type OrganizationTotals struct {
	Total float64
	Items []LineItem
}

// NewAggregationNode returns an empty tree ready for insertion.
func NewAggregationNode() *AggregationNode {
	return &AggregationNode{Years: make(map[string]*YearTotals)}
}

// Add inserts one line item, updating running totals on every level.
func (n *AggregationNode) Add(item LineItem) {
	year, ok := n.Years[item.FundingYear]
	if !ok {
		year = &YearTotals{Vendors: make(map[string]*VendorTotals)}
		n.Years[item.FundingYear] = year
	}

	vendor, ok := year.Vendors[item.Vendor.Display]
	if !ok {
		vendor = &VendorTotals{
			Vendor:        item.Vendor,
			Organizations: make(map[string]*OrganizationTotals),
		}
		year.Vendors[item.Vendor.Display] = vendor
	}

	org, ok := vendor.Organizations[item.OrganizationName]
	if !ok {
		org = &OrganizationTotals{}
		vendor.Organizations[item.OrganizationName] = org
	}

	n.GrandTotal += item.Cost
	n.ItemCount++
	year.Total += item.Cost
	vendor.Total += item.Cost
	vendor.ItemCount++
	org.Total += item.Cost
	org.Items = append(org.Items, item)
}

// Items flattens the tree back into its constituent line items. Order follows
// no particular key ordering and must not be relied on for display.
func (n *AggregationNode) Items() []LineItem {
	items := make([]LineItem, 0, n.ItemCount)
	for _, year := range n.Years {
		for _, vendor := range year.Vendors {
			for _, org := range vendor.Organizations {
				items = append(items, org.Items...)
			}
		}
	}
	return items
}
