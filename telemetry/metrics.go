package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/pouriyajamshidi/tcprobe"
	"github.com/pouriyajamshidi/tcprobe/statistics"
)

// MetricsHandler translates run events into OpenTelemetry metrics.
type MetricsHandler struct {
	attempts       metric.Int64Counter
	probes         metric.Int64Counter
	connectLatency metric.Float64Histogram
	runDuration    metric.Float64Histogram
}

// NewMetricsHandler creates the instruments on meter.
func NewMetricsHandler(meter metric.Meter) (*MetricsHandler, error) {
	attempts, err := meter.Int64Counter("tcprobe.attempts",
		metric.WithDescription("Number of connect attempts"),
	)
	if err != nil {
		return nil, err
	}

	probes, err := meter.Int64Counter("tcprobe.probes",
		metric.WithDescription("Number of probed targets"),
	)
	if err != nil {
		return nil, err
	}

	connectLatency, err := meter.Float64Histogram("tcprobe.connect.latency",
		metric.WithDescription("Latency of successful connects in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram("tcprobe.run.duration",
		metric.WithDescription("Duration of a run in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &MetricsHandler{
		attempts:       attempts,
		probes:         probes,
		connectLatency: connectLatency,
		runDuration:    runDuration,
	}, nil
}

// Handle records the metrics of e. It satisfies tcprobe.EventHandler.
func (h *MetricsHandler) Handle(e tcprobe.Event) {
	switch e.Kind {
	case tcprobe.EventAttemptFinished:
		h.handleAttemptFinished(e)
	case tcprobe.EventProbeFinished:
		h.handleProbeFinished(e)
	case tcprobe.EventRunFinished:
		h.handleRunFinished(e)
	}
}

// handleAttemptFinished counts the attempt by outcome and records the
// latency of a successful connect.
func (h *MetricsHandler) handleAttemptFinished(e tcprobe.Event) {
	ctx := context.Background()

	h.attempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", e.Outcome.Kind.String()),
	))

	if e.Outcome.OK() {
		h.connectLatency.Record(ctx, statistics.DurationToMillisecond(e.Outcome.Latency),
			metric.WithAttributes(attribute.String("target", e.Target)))
	}
}

// handleProbeFinished counts the target by final status.
func (h *MetricsHandler) handleProbeFinished(e tcprobe.Event) {
	if e.Result == nil {
		return
	}

	h.probes.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("status", string(e.Result.Status)),
	))
}

// handleRunFinished records the run duration.
func (h *MetricsHandler) handleRunFinished(e tcprobe.Event) {
	h.runDuration.Record(context.Background(), e.Elapsed.Seconds(), metric.WithAttributes(
		attribute.String("run_id", e.RunID),
	))
}
