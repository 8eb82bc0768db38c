// Package timeutil formats the heterogeneous timestamps coming back from the
// check-in workflow for display.
package timeutil

import (
	"strings"
	"time"
)

// FormatTime reduces a scan timestamp to "HH:MM" for the recent-scans feed.
// The workflow emits two shapes: the French "19/01/2026 à 14:30:45" form and
// plain ISO-8601. Anything unrecognized is returned as-is.
func FormatTime(timestamp string) string {
	if strings.Contains(timestamp, "à") {
		parts := strings.SplitN(timestamp, "à", 2)
		timePart := strings.TrimSpace(parts[1])
		if len(timePart) >= 5 {
			return timePart[:5]
		}
		return timestamp
	}

	if t, err := time.Parse(time.RFC3339, timestamp); err == nil {
		return t.Format("15:04")
	}

	return timestamp
}
