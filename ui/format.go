package ui

import (
	"fmt"
	"strconv"
	"time"
)

// FormatViews abbreviates large view counts: 1.5k, 2.3m.
func FormatViews(views int) string {
	switch {
	case views >= 1_000_000:
		return fmt.Sprintf("%.1fm", float64(views)/1_000_000)
	case views >= 1_000:
		return fmt.Sprintf("%.1fk", float64(views)/1_000)
	default:
		return strconv.Itoa(views)
	}
}

// FormatDate renders a timestamp as dd/mm/yyyy, or "-" when unknown.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006")
}

// Truncate shortens s to maxLen runes, ending in "..." when cut.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
