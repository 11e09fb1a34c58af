// Package progress derives a project's completion percentage from its
// schedule. The value is always computed at read time, never stored.
package progress

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Progress linearly interpolates elapsed calendar days over the total
// schedule, in whole days rounded up, clamped to [0, 100]. A schedule
// whose end does not follow its start is treated as a single day so
// the ratio stays defined.
func Progress(start, end, now time.Time) int {
	totalDays := ceilDays(end.Sub(start))
	if totalDays < 1 {
		totalDays = 1
	}

	daysElapsed := ceilDays(now.Sub(start))

	pct := int(math.Round(float64(daysElapsed) / float64(totalDays) * 100))

	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(day)))
}
