package view

import (
	"fmt"
	"time"
)

// Money renders an amount with two decimal places and no grouping, matching
// what the backend reports and what the browser-side totals compute.
func Money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatDate renders timestamps the way the console displays them.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("02/01/2006 15:04:05")
}
