package tcprobe

import (
	"time"

	"github.com/pouriyajamshidi/tcprobe/statistics"
)

// EventKind identifies the type of event emitted during a run.
type EventKind string

const (
	// EventRunStarted is emitted once, before any target is probed.
	EventRunStarted EventKind = "run.started"

	// EventProbeStarted is emitted when a target acquires a concurrency slot.
	EventProbeStarted EventKind = "probe.started"

	// EventAttemptFinished is emitted after every connect attempt.
	EventAttemptFinished EventKind = "attempt.finished"

	// EventRetryScheduled is emitted before the backoff sleep of a retry.
	EventRetryScheduled EventKind = "retry.scheduled"

	// EventProbeFinished carries the final result of a target.
	EventProbeFinished EventKind = "probe.finished"

	// EventRunFinished carries the summary, after every target finished.
	EventRunFinished EventKind = "run.finished"
)

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	return string(k)
}

// Event is a record of something that happened during a run. Only the
// fields relevant to Kind are set.
type Event struct {
	Kind  EventKind
	RunID string
	Time  time.Time

	// Index is the target's position in the input list; Target its text.
	Index  int
	Target string

	// Attempt is the 0-indexed attempt number for attempt and retry events.
	Attempt uint

	// Delay is the backoff before the next attempt (retry.scheduled only).
	Delay time.Duration

	// Elapsed is the duration since the probe or run started.
	Elapsed time.Duration

	Outcome statistics.Outcome
	Result  *statistics.ProbeResult
	Summary *statistics.Summary

	// Total is the number of targets (run.started only).
	Total int
}

// NewEvent creates a new event with the current timestamp.
func NewEvent(kind EventKind, runID string) Event {
	return Event{
		Kind:  kind,
		RunID: runID,
		Time:  time.Now(),
	}
}

// WithTarget sets the target information on the event.
func (e Event) WithTarget(index int, target string) Event {
	e.Index = index
	e.Target = target
	return e
}

// WithAttempt sets the attempt number on the event.
func (e Event) WithAttempt(attempt uint) Event {
	e.Attempt = attempt
	return e
}

// WithElapsed sets the elapsed duration on the event.
func (e Event) WithElapsed(elapsed time.Duration) Event {
	e.Elapsed = elapsed
	return e
}

// EventHandler is a function type for handling events.
// Handlers are called from many goroutines at once and must be safe for
// concurrent use.
type EventHandler func(Event)

// MultiEventHandler combines multiple handlers into one.
func MultiEventHandler(handlers ...EventHandler) EventHandler {
	return func(e Event) {
		for _, h := range handlers {
			if h != nil {
				h(e)
			}
		}
	}
}
