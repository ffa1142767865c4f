package normalize

import (
	"strconv"
	"strings"

	"github.com/de-tools/erate-atlas/pkg/models/domain"
	"github.com/de-tools/erate-atlas/pkg/models/store"
	"github.com/de-tools/erate-atlas/pkg/services/vendor"
)

// Rejection explains why a raw record did not become a line item.
type Rejection int

const (
	Accepted Rejection = iota
	// RejectedSupersededForm marks a historical filing replaced by a newer
	// form version.
	RejectedSupersededForm
	// RejectedVendor marks a manufacturer outside the target vendor set.
	RejectedVendor
)

// Filters select which business checks apply to a workflow. The state/year
// workflow filters form versions here; the organization workflow already
// restricts them in the data source query.
type Filters struct {
	RequireCurrentForm bool
}

// Normalizer converts raw funding records into typed line items. It keeps a
// count of cost cells that failed numeric parsing and were coerced to zero,
// for data-quality visibility.
type Normalizer struct {
	taxonomy     *vendor.Taxonomy
	coercedCosts int
}

func NewNormalizer(taxonomy *vendor.Taxonomy) *Normalizer {
	return &Normalizer{taxonomy: taxonomy}
}

// Normalize applies the business filters in order and, when the record
// survives, extracts a line item. The returned Rejection is Accepted on
// success.
func (n *Normalizer) Normalize(rec store.FundingRecord, filters Filters) (domain.LineItem, Rejection) {
	if filters.RequireCurrentForm && strings.TrimSpace(rec.Str(store.FieldFormVersion)) != "Current" {
		return domain.LineItem{}, RejectedSupersededForm
	}

	manufacturer := rec.Str(store.FieldManufacturerName)
	if !n.taxonomy.IsTarget(manufacturer) {
		return domain.LineItem{}, RejectedVendor
	}

	return domain.LineItem{
		FundingYear:       rec.Str(store.FieldFundingYear),
		OrganizationName:  rec.Str(store.FieldOrganizationName),
		ManufacturerRaw:   manufacturer,
		Vendor:            n.taxonomy.Canonicalize(manufacturer),
		ProductName:       rec.Str(store.FieldProductName),
		Model:             rec.Str(store.FieldModelOfEquipment),
		Quantity:          rec.Str(store.FieldOneTimeQuantity),
		Cost:              n.extractCost(rec),
		ApplicationNumber: rec.Str(store.FieldApplicationNumber),
	}, Accepted
}

// NormalizeAll runs Normalize over a batch and keeps the accepted items.
func (n *Normalizer) NormalizeAll(recs []store.FundingRecord, filters Filters) []domain.LineItem {
	var items []domain.LineItem
	for _, rec := range recs {
		if item, rejection := n.Normalize(rec, filters); rejection == Accepted {
			items = append(items, item)
		}
	}
	return items
}

// CoercedCosts reports how many records had an absent or non-numeric cost
// field coerced to zero so far.
func (n *Normalizer) CoercedCosts() int {
	return n.coercedCosts
}

// extractCost parses the pre-discount extended eligible line item cost.
// Upstream data is inconsistently populated, so absence and parse failures
// yield zero rather than an error; each coercion is counted.
func (n *Normalizer) extractCost(rec store.FundingRecord) float64 {
	raw := strings.TrimSpace(rec.Str(store.FieldLineItemCost))
	if raw == "" {
		n.coercedCosts++
		return 0
	}
	cost, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		n.coercedCosts++
		return 0
	}
	return cost
}
