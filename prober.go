package tcprobe

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/pouriyajamshidi/tcprobe/dns"
	"github.com/pouriyajamshidi/tcprobe/option"
	"github.com/pouriyajamshidi/tcprobe/pingers"
	"github.com/pouriyajamshidi/tcprobe/statistics"
)

const (
	DefaultTimeout     = 5 * time.Second
	DefaultConcurrency = 50
)

// Prober probes a list of targets in parallel and aggregates the results.
type Prober struct {
	pinger   Pinger
	resolver Resolver
	handler  EventHandler
	newTimer func() backoff.Timer

	Timeout     time.Duration
	Retries     uint
	Concurrency int
	BackOffStep time.Duration
}

type ProberOption = option.Option[Prober]

// WithTimeout configures the per-attempt connect timeout. It is ignored
// when a custom pinger is supplied with WithPinger.
func WithTimeout(timeout time.Duration) ProberOption {
	return func(p *Prober) {
		if timeout > 0 {
			p.Timeout = timeout
		}
	}
}

// WithRetries configures how many extra attempts a failing target gets.
func WithRetries(retries uint) ProberOption {
	return func(p *Prober) {
		p.Retries = retries
	}
}

// WithConcurrency caps the number of targets probed at the same time.
// Values below 1 are raised to 1.
func WithConcurrency(n int) ProberOption {
	return func(p *Prober) {
		p.Concurrency = max(n, 1)
	}
}

// WithBackOffStep configures the linear backoff unit.
func WithBackOffStep(step time.Duration) ProberOption {
	return func(p *Prober) {
		p.BackOffStep = step
	}
}

// WithBackOffTimer replaces the timer used for backoff sleeps. newTimer is
// called once per target.
func WithBackOffTimer(newTimer func() backoff.Timer) ProberOption {
	return func(p *Prober) {
		p.newTimer = newTimer
	}
}

// WithPinger replaces the default TCP pinger.
func WithPinger(pinger Pinger) ProberOption {
	return func(p *Prober) {
		p.pinger = pinger
	}
}

// WithResolver replaces the default DNS resolver.
func WithResolver(resolver Resolver) ProberOption {
	return func(p *Prober) {
		p.resolver = resolver
	}
}

// WithEventHandler registers a handler for run events.
func WithEventHandler(handler EventHandler) ProberOption {
	return func(p *Prober) {
		p.handler = handler
	}
}

// NewProber creates a new prober with optional configuration.
func NewProber(opts ...ProberOption) *Prober {
	p := Prober{
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		BackOffStep: DefaultBackOffStep,
	}

	for _, opt := range opts {
		opt(&p)
	}

	if p.pinger == nil {
		p.pinger = pingers.NewTCPPinger(pingers.WithTimeout(p.Timeout))
	}

	if p.resolver == nil {
		p.resolver = dns.NewResolver()
	}

	return &p
}

// Run probes every target and returns once all of them have finished.
// Results keep the order of targets. Cancelling ctx stops waiting for
// slots, in-flight connects and backoff sleeps; the affected targets are
// reported as unhealthy with a cancelled outcome.
func (p *Prober) Run(ctx context.Context, targets []string) statistics.Summary {
	runID := uuid.NewString()
	start := time.Now()

	started := NewEvent(EventRunStarted, runID)
	started.Total = len(targets)
	p.emit(started)

	results := make([]statistics.ProbeResult, len(targets))
	sem := semaphore.NewWeighted(int64(p.Concurrency))

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = statistics.NewUnhealthyResult(i, target, statistics.NewCancelled(err), 0, nil)
				p.emitResult(runID, &results[i], 0)
				return
			}
			defer sem.Release(1)

			results[i] = p.probeTarget(ctx, runID, i, target)
		}()
	}
	wg.Wait()

	summary := statistics.NewSummary(runID, results, start, time.Now())

	finished := NewEvent(EventRunFinished, runID).WithElapsed(summary.Duration())
	finished.Summary = &summary
	p.emit(finished)

	return summary
}

// attemptError lets a failed outcome travel through the backoff loop.
type attemptError struct {
	outcome statistics.Outcome
}

func (e *attemptError) Error() string {
	return e.outcome.Detail
}

func (e *attemptError) Unwrap() error {
	return e.outcome.Err
}

// probeTarget runs attempts for one target until one connects or the
// retry budget is spent. Attempt i (i > 0) is preceded by a backoff of
// i × BackOffStep.
func (p *Prober) probeTarget(ctx context.Context, runID string, index int, target string) statistics.ProbeResult {
	start := time.Now()
	p.emit(NewEvent(EventProbeStarted, runID).WithTarget(index, target))

	var (
		attempts []statistics.Outcome
		last     statistics.Outcome
		latency  time.Duration
	)

	operation := func() error {
		attempt := uint(len(attempts))
		outcome := p.attempt(ctx, target)
		attempts = append(attempts, outcome)

		e := NewEvent(EventAttemptFinished, runID).
			WithTarget(index, target).
			WithAttempt(attempt).
			WithElapsed(time.Since(start))
		e.Outcome = outcome
		p.emit(e)

		if outcome.OK() {
			latency = outcome.Latency
			return nil
		}

		last = outcome
		if outcome.Kind == statistics.Cancelled {
			return backoff.Permanent(&attemptError{outcome})
		}
		return &attemptError{outcome}
	}

	notify := func(_ error, delay time.Duration) {
		e := NewEvent(EventRetryScheduled, runID).
			WithTarget(index, target).
			WithAttempt(uint(len(attempts))).
			WithElapsed(time.Since(start))
		e.Delay = delay
		p.emit(e)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(NewLinearBackOff(p.BackOffStep), uint64(p.Retries)),
		ctx,
	)

	var timer backoff.Timer
	if p.newTimer != nil {
		timer = p.newTimer()
	}

	err := backoff.RetryNotifyWithTimer(operation, policy, notify, timer)

	var retriesUsed uint
	if len(attempts) > 0 {
		retriesUsed = uint(len(attempts) - 1)
	}

	var result statistics.ProbeResult
	switch {
	case err == nil:
		result = statistics.NewHealthyResult(index, target, latency, retriesUsed, attempts)
	default:
		if ctxErr := ctx.Err(); ctxErr != nil && last.Kind != statistics.Cancelled {
			last = statistics.NewCancelled(ctxErr)
		}
		result = statistics.NewUnhealthyResult(index, target, last, retriesUsed, attempts)
	}

	p.emitResult(runID, &result, time.Since(start))

	return result
}

// attempt resolves target afresh and makes one connect attempt.
func (p *Prober) attempt(ctx context.Context, target string) statistics.Outcome {
	addr, err := p.resolver.Resolve(ctx, target)
	if err != nil {
		if ctx.Err() != nil {
			return statistics.NewCancelled(ctx.Err())
		}
		return statistics.NewResolutionFailed(err, noAddresses(err))
	}

	return p.pinger.Ping(ctx, addr)
}

func noAddresses(err error) bool {
	return errors.Is(err, dns.ErrNoIPAddresses) ||
		errors.Is(err, dns.ErrNoIPv4Address) ||
		errors.Is(err, dns.ErrNoIPv6Address)
}

func (p *Prober) emitResult(runID string, result *statistics.ProbeResult, elapsed time.Duration) {
	e := NewEvent(EventProbeFinished, runID).
		WithTarget(result.Index, result.Target).
		WithAttempt(result.RetriesUsed).
		WithElapsed(elapsed)
	e.Result = result
	p.emit(e)
}

func (p *Prober) emit(e Event) {
	if p.handler != nil {
		p.handler(e)
	}
}
