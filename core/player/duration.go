package player

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseDuration converts a "m:ss" label to seconds. Malformed labels yield 0.
func ParseDuration(label string) int {
	parts := strings.Split(strings.TrimSpace(label), ":")
	if len(parts) != 2 {
		return 0
	}
	mins, err := strconv.Atoi(parts[0])
	if err != nil || mins < 0 {
		return 0
	}
	secs, err := strconv.Atoi(parts[1])
	if err != nil || secs < 0 || secs >= 60 {
		return 0
	}
	return mins*60 + secs
}

// FormatTime renders seconds as "m:ss".
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// ElapsedSeconds maps a progress value onto a track of totalSeconds,
// rounded down to whole seconds.
func ElapsedSeconds(progress float64, totalSeconds int) int {
	return int(math.Floor(float64(totalSeconds) * clamp(progress, 0, MaxProgress) / MaxProgress))
}

// RateForDuration returns the per-millisecond rate that sweeps 0..100 in
// exactly totalSeconds. Unknown durations fall back to DefaultRate.
func RateForDuration(totalSeconds int) float64 {
	if totalSeconds <= 0 {
		return DefaultRate
	}
	return MaxProgress / (float64(totalSeconds) * 1000)
}
