package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NotAvailable is rendered wherever an optional field is missing.
const NotAvailable = "N/A"

// FormatCrore formats a currency amount that is already denominated in
// Crores. Amounts of one lakh Crore and above are shown in thousands of
// Crores to keep the dashboard columns narrow.
func FormatCrore(v *float64) string {
	if v == nil || *v == 0 {
		return NotAvailable
	}
	d := decimal.NewFromFloat(*v)
	if d.GreaterThanOrEqual(decimal.NewFromInt(100000)) {
		return fmt.Sprintf("₹%sK Cr", d.Div(decimal.NewFromInt(1000)).Round(0))
	}
	return fmt.Sprintf("₹%s Cr", groupDigits(d.Round(0)))
}

// FormatNumber renders an optional numeric field with one decimal place and
// an optional suffix, or N/A when the field is missing.
func FormatNumber(v *float64, suffix string) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%s", *v, suffix)
}

// FormatPrice renders a price in rupees with two decimal places.
func FormatPrice(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

// groupDigits inserts comma separators into the integer part of d.
func groupDigits(d decimal.Decimal) string {
	s := d.String()
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
