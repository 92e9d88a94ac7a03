// Package roadmap turns flat roadmap rows into the view models served by the
// public site: items with nested logs and artifacts, phase lists and ISO-week
// groupings. Everything here is pure; inputs are never mutated.
package roadmap

import (
	"math"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
)

// Hours coerces an optional hour value to a non-negative number.
func Hours(v *float64) float64 {
	if v == nil || *v < 0 || math.IsNaN(*v) {
		return 0
	}
	return *v
}

// CalculateProgressPercent reports how far an item is, in [0,100].
// Done items are always 100. Missing or non-positive hours yield 0.
func CalculateProgressPercent(status string, planned, actual *float64) int {
	if status == db.StatusDone {
		return 100
	}

	p, a := Hours(planned), Hours(actual)
	if p <= 0 || a <= 0 {
		return 0
	}

	percent := int(math.Round(a / p * 100))
	return min(max(percent, 0), 100)
}
