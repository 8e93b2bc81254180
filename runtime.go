package nodedetails

import (
	"fmt"
	"strings"
	"time"
)

const (
	millisPerSecond = int64(1000)
	millisPerMinute = 60 * millisPerSecond
	millisPerHour   = 60 * millisPerMinute
	millisPerDay    = 24 * millisPerHour
)

// FormatRuntime renders the time elapsed between start and end, most
// significant unit first, e.g. "1 day, 1 hr, 2 min, 3 sec". Zero valued units
// are omitted. The result is empty when end is zero or when no unit is
// greater than zero.
func FormatRuntime(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return ""
	}
	elapsed := end.Sub(start).Milliseconds()
	if elapsed <= 0 {
		return ""
	}
	parts := []struct {
		name  string
		value int64
	}{
		{"day", elapsed / millisPerDay},
		{"hr", elapsed / millisPerHour % 24},
		{"min", elapsed / millisPerMinute % 60},
		{"sec", elapsed / millisPerSecond % 60},
	}
	var out []string
	for _, part := range parts {
		if part.value > 0 {
			out = append(out, fmt.Sprintf("%d %s", part.value, part.name))
		}
	}
	return strings.Join(out, ", ")
}

// RuntimeString is FormatRuntime over ISO formatted timestamps. A missing or
// malformed timestamp yields "".
func RuntimeString(start, end string) string {
	startTime, ok := ParseTimestamp(start)
	if !ok {
		return ""
	}
	endTime, ok := ParseTimestamp(end)
	if !ok {
		return ""
	}
	return FormatRuntime(startTime, endTime)
}
