package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var englishPrinter = message.NewPrinter(language.English)

// MoneyTotal renders a total with thousands separators and two decimal
// places.
func MoneyTotal(v float64) string {
	return englishPrinter.Sprintf("$%.2f", v)
}

// MoneyItem renders a per-line-item amount with thousands separators and no
// decimal places, trading precision for density on drill-down rows.
func MoneyItem(v float64) string {
	return englishPrinter.Sprintf("$%.0f", v)
}
