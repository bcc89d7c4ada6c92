// Package format turns raw counts and timestamps from the search API into
// short human-readable strings.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// Number renders n compactly: 950, 1.5K, 2.3M.
func Number(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// Count renders n with thousands separators, e.g. 12,345.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// TimeAgo describes how long before now t was: "just now", "5m ago",
// "3h ago", "12d ago", "4mo ago" or "2y ago". Months are 30 days and years
// 365 days.
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)

	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))
	months := int(diff / (30 * 24 * time.Hour))
	years := int(diff / (365 * 24 * time.Hour))

	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 30:
		return fmt.Sprintf("%dd ago", days)
	case months < 12:
		return fmt.Sprintf("%dmo ago", months)
	default:
		return fmt.Sprintf("%dy ago", years)
	}
}
