package discord

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Durations come in as "45s", "30m", "1h" or "2d".
var durationPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

func parseDuration(raw string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q (expected e.g. 30m, 1h, 2d)", raw)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	switch m[2] {
	case "s":
		return time.Duration(n) * time.Second, nil
	case "m":
		return time.Duration(n) * time.Minute, nil
	case "h":
		return time.Duration(n) * time.Hour, nil
	default:
		return time.Duration(n) * 24 * time.Hour, nil
	}
}
