// Package views converts the coarse view-count brackets influencers
// self-report into representative numbers, and formats raw counts for
// display.
package views

import (
	"fmt"
	"math"
)

// DefaultEstimate is used when neither an override nor a known bracket is
// available.
const DefaultEstimate = 5000

// rangeMidpoints maps each bracket to its representative value.
var rangeMidpoints = map[string]int64{
	"0-10k":     5000,
	"10k-50k":   30000,
	"50k-100k":  75000,
	"100k-500k": 300000,
	"500k+":     750000,
}

// Estimate resolves a single representative view count. An explicit
// positive override always wins; otherwise a known bracket maps to its
// midpoint; otherwise the default applies.
func Estimate(override int64, viewRange string) int64 {
	if override > 0 {
		return override
	}
	if mid, ok := rangeMidpoints[viewRange]; ok {
		return mid
	}
	return DefaultEstimate
}

// FormatCount renders a view count compactly: millions with one decimal
// ("1.2M"), thousands rounded with no decimal ("50K"), small values
// verbatim. Non-positive counts render as a placeholder dash.
func FormatCount(count int64) string {
	switch {
	case count <= 0:
		return "—"
	case count >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(count)/1_000_000)
	case count >= 1_000:
		thousands := int64(math.Round(float64(count) / 1_000))
		if thousands >= 1_000 {
			return fmt.Sprintf("%.1fM", float64(count)/1_000_000)
		}
		return fmt.Sprintf("%dK", thousands)
	default:
		return fmt.Sprintf("%d", count)
	}
}
