package telemetry_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/pouriyajamshidi/tcprobe/telemetry"
)

func TestLogHandler_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     slog.Level
		wantIn    []string
		wantNotIn []string
	}{
		{
			name:      "info shows unhealthy targets only",
			level:     slog.LevelInfo,
			wantIn:    []string{"target unhealthy", "10.255.255.1:22", "timeout (1000ms)"},
			wantNotIn: []string{"attempt finished", "run finished"},
		},
		{
			name:   "debug shows every attempt",
			level:  slog.LevelDebug,
			wantIn: []string{"run started", "attempt finished", "retry scheduled", "target unhealthy", "run finished", "healthy=1", "total=2"},
		},
		{
			name:      "warn is silent",
			level:     slog.LevelWarn,
			wantNotIn: []string{"target unhealthy", "attempt finished"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: tt.level}))

			replayRun(telemetry.NewLogHandler(logger).Handle)

			output := buf.String()
			for _, want := range tt.wantIn {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q in output:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.wantNotIn {
				if strings.Contains(output, unwanted) {
					t.Errorf("did not expect %q in output:\n%s", unwanted, output)
				}
			}
		})
	}
}
