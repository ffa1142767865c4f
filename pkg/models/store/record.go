package store

import (
	"fmt"
	"strconv"
)

// Field names of the FRN line item dataset as delivered by the open-data
// endpoint.
const (
	FieldApplicationNumber = "application_number"
	FieldFundingYear       = "funding_year"
	FieldFormVersion       = "form_version"
	FieldOrganizationName  = "organization_name"
	FieldState             = "state"
	FieldManufacturerName  = "form_471_manufacturer_name"
	FieldProductName       = "form_471_product_name"
	FieldModelOfEquipment  = "model_of_equipment"
	FieldOneTimeQuantity   = "one_time_quantity"
	FieldLineItemCost      = "pre_discount_extended_eligible_line_item_costs"
)

// FundingRecord is one untyped row as returned by the data source. Fields may
// be missing or carry unexpected types.
type FundingRecord map[string]any

// Str returns the named field as a string, "" when absent.
func (r FundingRecord) Str(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
