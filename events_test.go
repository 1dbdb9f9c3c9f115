package tcprobe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pouriyajamshidi/tcprobe"
	"github.com/pouriyajamshidi/tcprobe/internal/testdata"
)

func TestNewEvent(t *testing.T) {
	e := tcprobe.NewEvent(tcprobe.EventAttemptFinished, testdata.TestRunID).
		WithTarget(2, testdata.TestTarget).
		WithAttempt(1)

	assert.Equal(t, tcprobe.EventAttemptFinished, e.Kind)
	assert.Equal(t, "attempt.finished", e.Kind.String())
	assert.Equal(t, testdata.TestRunID, e.RunID)
	assert.Equal(t, 2, e.Index)
	assert.Equal(t, testdata.TestTarget, e.Target)
	assert.Equal(t, uint(1), e.Attempt)
	assert.False(t, e.Time.IsZero())
}

func TestMultiEventHandler(t *testing.T) {
	var first, second []tcprobe.EventKind

	h := tcprobe.MultiEventHandler(
		func(e tcprobe.Event) { first = append(first, e.Kind) },
		nil,
		func(e tcprobe.Event) { second = append(second, e.Kind) },
	)

	h(tcprobe.NewEvent(tcprobe.EventRunStarted, testdata.TestRunID))
	h(tcprobe.NewEvent(tcprobe.EventRunFinished, testdata.TestRunID))

	want := []tcprobe.EventKind{tcprobe.EventRunStarted, tcprobe.EventRunFinished}
	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
}
