// Package telemetry turns prober events into OpenTelemetry metrics, traces
// and structured log records.
package telemetry

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pouriyajamshidi/tcprobe"
)

// TracingHandler translates run events into OpenTelemetry spans: one span
// per run, a child span per target and a span event per attempt.
type TracingHandler struct {
	tracer trace.Tracer

	mu         sync.RWMutex
	runSpans   map[string]trace.Span      // runID -> span
	runCtxs    map[string]context.Context // runID -> context (for child spans)
	probeSpans map[string]trace.Span      // runID:index -> span
}

// NewTracingHandler creates a new TracingHandler that uses the given tracer
// to create spans from run events.
func NewTracingHandler(tracer trace.Tracer) *TracingHandler {
	return &TracingHandler{
		tracer:     tracer,
		runSpans:   make(map[string]trace.Span),
		runCtxs:    make(map[string]context.Context),
		probeSpans: make(map[string]trace.Span),
	}
}

// Handle creates or ends spans for e. It satisfies tcprobe.EventHandler.
func (h *TracingHandler) Handle(e tcprobe.Event) {
	switch e.Kind {
	case tcprobe.EventRunStarted:
		h.handleRunStarted(e)
	case tcprobe.EventProbeStarted:
		h.handleProbeStarted(e)
	case tcprobe.EventAttemptFinished, tcprobe.EventRetryScheduled:
		h.handleAttemptEvent(e)
	case tcprobe.EventProbeFinished:
		h.handleProbeFinished(e)
	case tcprobe.EventRunFinished:
		h.handleRunFinished(e)
	}
}

func probeKey(e tcprobe.Event) string {
	return e.RunID + ":" + strconv.Itoa(e.Index)
}

// handleRunStarted creates a root span for the run.
func (h *TracingHandler) handleRunStarted(e tcprobe.Event) {
	ctx, span := h.tracer.Start(context.Background(), "run:"+e.RunID,
		trace.WithAttributes(
			attribute.String("tcprobe.run_id", e.RunID),
			attribute.Int("tcprobe.targets", e.Total),
		),
		trace.WithTimestamp(e.Time),
	)

	h.mu.Lock()
	h.runSpans[e.RunID] = span
	h.runCtxs[e.RunID] = ctx
	h.mu.Unlock()
}

func (h *TracingHandler) startProbeSpan(e tcprobe.Event) trace.Span {
	h.mu.RLock()
	parentCtx, ok := h.runCtxs[e.RunID]
	h.mu.RUnlock()

	if !ok {
		parentCtx = context.Background()
	}

	_, span := h.tracer.Start(parentCtx, "probe:"+e.Target,
		trace.WithAttributes(
			attribute.String("tcprobe.run_id", e.RunID),
			attribute.String("tcprobe.target", e.Target),
			attribute.Int("tcprobe.index", e.Index),
		),
		trace.WithTimestamp(e.Time),
	)

	return span
}

// handleProbeStarted creates a child span under the run span.
func (h *TracingHandler) handleProbeStarted(e tcprobe.Event) {
	span := h.startProbeSpan(e)

	h.mu.Lock()
	h.probeSpans[probeKey(e)] = span
	h.mu.Unlock()
}

// handleAttemptEvent adds a span event for every attempt and scheduled retry.
func (h *TracingHandler) handleAttemptEvent(e tcprobe.Event) {
	h.mu.RLock()
	span, ok := h.probeSpans[probeKey(e)]
	h.mu.RUnlock()

	if !ok {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Int("tcprobe.attempt", int(e.Attempt)),
	}

	switch e.Kind {
	case tcprobe.EventAttemptFinished:
		attrs = append(attrs, attribute.String("tcprobe.outcome", e.Outcome.Kind.String()))
		if e.Outcome.OK() {
			attrs = append(attrs, attribute.String("tcprobe.latency", e.Outcome.Latency.String()))
		} else {
			attrs = append(attrs, attribute.String("tcprobe.error", e.Outcome.Detail))
		}
	case tcprobe.EventRetryScheduled:
		attrs = append(attrs, attribute.String("tcprobe.delay", e.Delay.String()))
	}

	span.AddEvent(e.Kind.String(), trace.WithTimestamp(e.Time), trace.WithAttributes(attrs...))
}

// handleProbeFinished ends the target's span. Targets that never got a
// concurrency slot have no span yet, so one is started and ended here.
func (h *TracingHandler) handleProbeFinished(e tcprobe.Event) {
	key := probeKey(e)

	h.mu.Lock()
	span, ok := h.probeSpans[key]
	if ok {
		delete(h.probeSpans, key)
	}
	h.mu.Unlock()

	if !ok {
		span = h.startProbeSpan(e)
	}

	if e.Result != nil {
		span.SetAttributes(
			attribute.String("tcprobe.status", string(e.Result.Status)),
			attribute.Int("tcprobe.retries_used", int(e.Result.RetriesUsed)),
		)

		if e.Result.IsHealthy() {
			span.SetStatus(codes.Ok, "")
		} else {
			span.SetStatus(codes.Error, e.Result.Error)
			span.RecordError(errors.New(e.Result.Error), trace.WithTimestamp(e.Time))
		}
	}

	span.End(trace.WithTimestamp(e.Time))
}

// handleRunFinished ends the root run span.
func (h *TracingHandler) handleRunFinished(e tcprobe.Event) {
	h.mu.Lock()
	span, ok := h.runSpans[e.RunID]
	if ok {
		delete(h.runSpans, e.RunID)
		delete(h.runCtxs, e.RunID)
	}
	h.mu.Unlock()

	if !ok {
		return
	}

	if e.Summary != nil {
		span.SetAttributes(
			attribute.Int("tcprobe.healthy", e.Summary.Healthy),
			attribute.Int("tcprobe.total", e.Summary.Total),
		)

		if e.Summary.AllHealthy() {
			span.SetStatus(codes.Ok, "")
		} else {
			span.SetStatus(codes.Error, "unhealthy targets")
		}
	}

	span.End(trace.WithTimestamp(e.Time))
}
