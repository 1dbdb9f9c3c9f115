package statistics

import (
	"fmt"
	"time"
)

// OutcomeKind classifies a single connect attempt.
type OutcomeKind int

const (
	Connected OutcomeKind = iota
	ConnectionRefused
	Timeout
	ResolutionFailed
	Cancelled
)

var outcomeKindNames = map[OutcomeKind]string{
	Connected:         "connected",
	ConnectionRefused: "refused",
	Timeout:           "timeout",
	ResolutionFailed:  "resolution_failed",
	Cancelled:         "cancelled",
}

func (k OutcomeKind) String() string {
	if name, ok := outcomeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the result of one connect attempt. Latency is only set for
// Connected; Detail is only set for the failure kinds.
type Outcome struct {
	Kind    OutcomeKind
	Latency time.Duration
	Detail  string
	Err     error
}

// OK reports whether the attempt established a connection.
func (o Outcome) OK() bool {
	return o.Kind == Connected
}

// NewConnected returns a successful outcome with the measured latency.
func NewConnected(latency time.Duration) Outcome {
	return Outcome{Kind: Connected, Latency: latency}
}

// NewRefused wraps a transport-level dial error.
func NewRefused(err error) Outcome {
	return Outcome{
		Kind:   ConnectionRefused,
		Detail: fmt.Sprintf("Connection refused: %v", err),
		Err:    err,
	}
}

// NewTimeout reports that the connect did not complete within timeout.
func NewTimeout(timeout time.Duration, err error) Outcome {
	return Outcome{
		Kind:   Timeout,
		Detail: fmt.Sprintf("timeout (%dms)", timeout.Milliseconds()),
		Err:    err,
	}
}

// NewResolutionFailed wraps a resolver error. noAddresses distinguishes a
// lookup that succeeded without returning any candidate.
func NewResolutionFailed(err error, noAddresses bool) Outcome {
	detail := fmt.Sprintf("DNS error: %v", err)
	if noAddresses {
		detail = "DNS resolution failed: no addresses"
	}

	return Outcome{
		Kind:   ResolutionFailed,
		Detail: detail,
		Err:    err,
	}
}

// NewCancelled reports that the run was cancelled before the attempt finished.
func NewCancelled(err error) Outcome {
	return Outcome{
		Kind:   Cancelled,
		Detail: fmt.Sprintf("cancelled: %v", err),
		Err:    err,
	}
}
