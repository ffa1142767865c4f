package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/de-tools/erate-atlas/pkg/models/domain"
)

// recordFields projects a line item back onto the source dataset's field
// names, plus the derived standardized vendor column.
func recordFields(item domain.LineItem) map[string]string {
	return map[string]string{
		"application_number":         item.ApplicationNumber,
		"funding_year":               item.FundingYear,
		"organization_name":          item.OrganizationName,
		"form_471_product_name":      item.ProductName,
		"form_471_manufacturer_name": item.ManufacturerRaw,
		"standardized_vendor":        item.Vendor.Display,
		"model_of_equipment":         item.Model,
		"one_time_quantity":          item.Quantity,
		"cost":                       strconv.FormatFloat(item.Cost, 'f', -1, 64),
	}
}

// fieldUnion returns the alphabetically sorted union of field names across
// all records; this becomes the CSV header.
func fieldUnion(records []map[string]string) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for field := range rec {
			seen[field] = struct{}{}
		}
	}
	fields := make([]string, 0, len(seen))
	for field := range seen {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// WriteCSV persists the line items as CSV with a header row covering every
// field present in the set.
func WriteCSV(path string, items []domain.LineItem) error {
	records := make([]map[string]string, 0, len(items))
	for _, item := range items {
		records = append(records, recordFields(item))
	}
	fields := fieldUnion(records)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	row := make([]string, len(fields))
	for _, rec := range records {
		for i, field := range fields {
			row[i] = rec[field]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteJSON persists the line items as a pretty-printed JSON array of the
// same records the CSV export emits.
func WriteJSON(path string, items []domain.LineItem) error {
	records := make([]map[string]string, 0, len(items))
	for _, item := range items {
		records = append(records, recordFields(item))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// HistoryCSVPath derives the export filename for an organization-history
// run.
func HistoryCSVPath(organization string) string {
	return cleanName(organization) + "_erate_history.csv"
}

func StateCSVPath(state, year string) string {
	return fmt.Sprintf("%s_erate_filtered_%s.csv", strings.ToLower(state), year)
}

func StateJSONPath(state, year string) string {
	return fmt.Sprintf("%s_erate_filtered_%s.json", strings.ToLower(state), year)
}

// cleanName lower-cases a name and strips every character that is not
// alphanumeric, space, hyphen or underscore; spaces become underscores.
func cleanName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimRight(b.String(), " ")
	return strings.ToLower(strings.ReplaceAll(cleaned, " ", "_"))
}
