// Package printers contains the logic for printing information
package printers

import (
	"fmt"

	"github.com/pouriyajamshidi/tcprobe/statistics"
)

const (
	labelOK   = "[OK]  "
	labelFail = "[FAIL]"

	// targetWidth is the column the target name is padded to.
	targetWidth = 30
)

// retriesInfo returns " (retries: n)" or nothing when no retry was needed.
func retriesInfo(retries uint) string {
	if retries == 0 {
		return ""
	}
	return fmt.Sprintf(" (retries: %d)", retries)
}

// errorDetail returns the error text of an unhealthy result.
func errorDetail(r *statistics.ProbeResult) string {
	if r.Error == "" {
		return "unknown"
	}
	return r.Error
}

// successLine formats the text that follows the status label of a healthy target.
func successLine(r *statistics.ProbeResult) string {
	return fmt.Sprintf("%-*s %.1fms%s", targetWidth, r.Target, r.LatencyMS(), retriesInfo(r.RetriesUsed))
}

// failedAttempts returns the details of every failed attempt but the last,
// which is already part of the result line.
func failedAttempts(r *statistics.ProbeResult) []string {
	var details []string
	for i, a := range r.Attempts {
		if a.OK() || i == len(r.Attempts)-1 {
			continue
		}
		details = append(details, fmt.Sprintf("attempt %d: %s", i, a.Detail))
	}
	return details
}

// summaryLine formats the healthy/total line.
func summaryLine(s *statistics.Summary) string {
	return fmt.Sprintf("%d/%d healthy", s.Healthy, s.Total)
}
