package delta

import (
	"fmt"
	"math"
	"strconv"
)

// NotAvailable is the display sentinel for unresolved values. It is only a
// rendering concern; aggregation code never sees it.
const NotAvailable = "N/D"

// Currency renders a monetary amount as whole pesos with thousand separators.
func Currency(amount float64) string {
	if amount < 0 {
		return "-$" + Grouped(-amount)
	}
	return "$" + Grouped(amount)
}

// Grouped renders a non-negative amount as a whole number with thousand
// separators.
func Grouped(v float64) string {
	s := strconv.FormatInt(int64(math.Round(math.Abs(v))), 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// Points renders a score with one decimal.
func Points(v float64) string {
	return fmt.Sprintf("%.1f pts", v)
}
