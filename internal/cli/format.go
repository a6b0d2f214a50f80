// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fcast/internal/model"
)

// NotAvailable is shown for undefined statistics.
const NotAvailable = "N/A"

// FormatCost formats a USD amount rounded half away from zero to cents.
// e.g., -2920 -> "-$2,920.00", 1234.565 -> "$1,234.57"
func FormatCost(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "$" + groupDigits(d.StringFixed(2))
}

// FormatCostShort formats a USD amount with K/M suffixes for chart labels.
func FormatCostShort(v float64) string {
	if math.IsNaN(v) {
		return NotAvailable
	}
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s$%.1fK", sign, abs/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, abs)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupDigits(strconv.FormatInt(n, 10))
}

// FormatFloat formats v with a fixed number of decimals and comma separators.
func FormatFloat(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	d := decimal.NewFromFloat(v).Round(places)
	if d.IsNegative() {
		return "-" + groupDigits(d.Neg().StringFixed(places))
	}
	return groupDigits(d.StringFixed(places))
}

// FormatGB formats a storage amount in gigabytes.
func FormatGB(v float64) string {
	if math.IsNaN(v) {
		return NotAvailable
	}
	return FormatFloat(v, 1) + " GB"
}

// FormatPercent formats a value that is already a percentage.
func FormatPercent(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return NotAvailable
	}
	return FormatFloat(pct, 1) + "%"
}

// FormatMonth renders a zero-based month index as a 1-based label.
func FormatMonth(m int) string {
	if m == model.NoBreakEven {
		return "none"
	}
	return "Month " + strconv.Itoa(m+1)
}

// FormatAverageMonth renders a zero-based fractional month as a 1-based label.
func FormatAverageMonth(m float64) string {
	if math.IsNaN(m) {
		return "none"
	}
	return "Month " + strconv.FormatFloat(m+1, 'f', 1, 64)
}

// groupDigits inserts thousands separators into an unsigned decimal string.
func groupDigits(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(intPart) % 3
	if remainder > 0 {
		result.WriteString(intPart[:remainder])
	}
	for i := remainder; i < len(intPart); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(intPart[i : i+3])
	}
	result.WriteString(frac)
	return result.String()
}
