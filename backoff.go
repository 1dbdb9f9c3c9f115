package tcprobe

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

var _ backoff.BackOff = (*LinearBackOff)(nil)

// DefaultBackOffStep is the delay unit between retries: the n-th retry
// waits n steps.
const DefaultBackOffStep = 100 * time.Millisecond

// LinearBackOff waits Step, 2×Step, 3×Step, ... between attempts.
// There is no jitter and no upper bound; the retry budget is applied
// separately with backoff.WithMaxRetries.
type LinearBackOff struct {
	Step    time.Duration
	retries int64
}

// NewLinearBackOff returns a LinearBackOff that starts at step.
func NewLinearBackOff(step time.Duration) *LinearBackOff {
	return &LinearBackOff{Step: step}
}

// NextBackOff implements backoff.BackOff.
func (b *LinearBackOff) NextBackOff() time.Duration {
	b.retries++
	return time.Duration(b.retries) * b.Step
}

// Reset implements backoff.BackOff.
func (b *LinearBackOff) Reset() {
	b.retries = 0
}
