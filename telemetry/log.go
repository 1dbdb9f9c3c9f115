package telemetry

import (
	"log/slog"

	"github.com/pouriyajamshidi/tcprobe"
)

// LogHandler writes run events as structured log records.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler that logs to logger.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

// Handle logs e. It satisfies tcprobe.EventHandler.
func (h *LogHandler) Handle(e tcprobe.Event) {
	switch e.Kind {
	case tcprobe.EventRunStarted:
		h.logger.Debug("run started", "run_id", e.RunID, "targets", e.Total)

	case tcprobe.EventAttemptFinished:
		h.logger.Debug("attempt finished",
			"target", e.Target,
			"attempt", e.Attempt,
			"outcome", e.Outcome.Kind.String(),
			"latency", e.Outcome.Latency,
			"detail", e.Outcome.Detail)

	case tcprobe.EventRetryScheduled:
		h.logger.Debug("retry scheduled", "target", e.Target, "attempt", e.Attempt, "delay", e.Delay)

	case tcprobe.EventProbeFinished:
		if e.Result == nil || e.Result.IsHealthy() {
			return
		}
		h.logger.Info("target unhealthy",
			"target", e.Target,
			"retries_used", e.Result.RetriesUsed,
			"error", e.Result.Error)

	case tcprobe.EventRunFinished:
		if e.Summary == nil {
			return
		}
		h.logger.Debug("run finished",
			"run_id", e.RunID,
			"healthy", e.Summary.Healthy,
			"total", e.Summary.Total,
			"elapsed", e.Elapsed)
	}
}
