package app

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is used whenever a timeout string cannot be parsed.
const DefaultTimeout = 5 * time.Second

// ParseDuration parses a connect timeout: "<n>ms" (integer milliseconds),
// "<n>s" (real number of seconds) or a bare integer number of seconds.
// It never fails; text that does not parse, or a non-positive value,
// yields DefaultTimeout.
func ParseDuration(s string) time.Duration {
	s = strings.TrimSpace(s)

	var d time.Duration

	switch {
	case strings.HasSuffix(s, "ms"):
		n, err := strconv.ParseUint(strings.TrimSuffix(s, "ms"), 10, 64)
		if err != nil {
			return DefaultTimeout
		}
		d = time.Duration(n) * time.Millisecond

	case strings.HasSuffix(s, "s"):
		secs, err := strconv.ParseFloat(strings.TrimSuffix(s, "s"), 64)
		if err != nil {
			return DefaultTimeout
		}
		d = time.Duration(secs * float64(time.Second))

	default:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return DefaultTimeout
		}
		d = time.Duration(n) * time.Second
	}

	if d <= 0 {
		return DefaultTimeout
	}

	return d
}
