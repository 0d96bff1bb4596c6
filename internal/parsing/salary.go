package parsing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatSalary renders optional salary bounds as the display string used in
// listings ("$80k - $100k", "$80k+", "Up to $80k", optional "/hr"). A zero
// bound means the upstream did not provide it; when both are zero the
// listing carries no salary and the empty string is returned. currency is
// accepted for signature parity with the upstreams but ignored: every wired
// board quotes USD.
func FormatSalary(min, max float64, currency, period string) string {
	_ = currency
	if min == 0 && max == 0 {
		return ""
	}

	var salary string
	switch {
	case min != 0 && max != 0:
		salary = fmt.Sprintf("$%s - $%s", formatAmount(min), formatAmount(max))
	case min != 0:
		salary = fmt.Sprintf("$%s+", formatAmount(min))
	default:
		salary = fmt.Sprintf("Up to $%s", formatAmount(max))
	}

	if strings.EqualFold(period, "hour") {
		salary += "/hr"
	}
	return salary
}

// formatAmount rounds amounts of a thousand or more to the nearest thousand
// with a "k" suffix; smaller amounts render literally.
func formatAmount(n float64) string {
	if n >= 1000 {
		return fmt.Sprintf("%dk", int(math.Round(n/1000)))
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
