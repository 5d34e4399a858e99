package trackbar

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders d as a compact human string such as
// "2d03h15m42.1s" or "5m02.3s". Units print in descending order starting
// from the highest non-zero one; once a unit has printed, every lower
// unit is shown too, zero-padded to two digits. Seconds are always
// present, with one fractional digit. Negative durations collapse to
// "0.0s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	secs := d.Seconds()
	days := int(secs / 86400)
	secs -= float64(days) * 86400
	hours := int(secs / 3600)
	secs -= float64(hours) * 3600
	mins := int(secs / 60)
	secs -= float64(mins) * 60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%dd", days)
	}
	if days > 0 || hours > 0 {
		if days > 0 {
			fmt.Fprintf(&b, "%02dh", hours)
		} else {
			fmt.Fprintf(&b, "%dh", hours)
		}
	}
	if days > 0 || hours > 0 || mins > 0 {
		if days > 0 || hours > 0 {
			fmt.Fprintf(&b, "%02dm", mins)
		} else {
			fmt.Fprintf(&b, "%dm", mins)
		}
	}
	if b.Len() > 0 {
		// A higher unit printed, so seconds are zero-padded too. The
		// fractional part always survives.
		fmt.Fprintf(&b, "%04.1fs", secs)
	} else {
		fmt.Fprintf(&b, "%.1fs", secs)
	}
	return b.String()
}
